package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// ReverseCommand creates the reverse command
func ReverseCommand() *cli.Command {
	return &cli.Command{
		Name:  "reverse",
		Usage: "Resolve a coordinate to its containing division",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:     "lat",
				Usage:    "Latitude",
				Required: true,
			},
			&cli.FloatFlag{
				Name:     "lon",
				Usage:    "Longitude",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Country shard to try before the global shard",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return reverseGeocode(ctx, c)
		},
	}
}

func reverseGeocode(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	result, err := service.ReverseGeocode(ctx, c.Float("lat"), c.Float("lon"), strings.ToUpper(c.String("country")))
	if err != nil {
		return fmt.Errorf("reverse geocoding: %w", err)
	}
	if result == nil {
		fmt.Println("No division contains this point")
		return nil
	}

	fmt.Printf("%s (%s)\n", result.PrimaryName, result.Subtype)
	if result.Region != "" {
		fmt.Printf("  region:     %s\n", result.Region)
	}
	if result.Country != "" {
		fmt.Printf("  country:    %s\n", result.Country)
	}
	if result.Population > 0 {
		fmt.Printf("  population: %d\n", result.Population)
	}
	fmt.Printf("  center:     %.4f, %.4f\n", result.Lat, result.Lon)
	return nil
}
