package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/brad-richardson/overture-geocode/pkg/geocoder"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search for administrative divisions",
		ArgsUsage: "<query text>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: geocoder.DefaultLimit,
			},
			&cli.BoolFlag{
				Name:  "autocomplete",
				Usage: "Treat the last token as a prefix",
			},
			&cli.StringFlag{
				Name:  "bias",
				Usage: "Country code to bias rankings toward",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Country shard to query alongside HEAD",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			text := strings.Join(c.Args().Slice(), " ")
			if text == "" {
				return fmt.Errorf("query text is required")
			}
			return searchDivisions(ctx, c, text)
		},
	}
}

func searchDivisions(ctx context.Context, c *cli.Command, text string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	query := geocoder.NewQuery(text).
		WithLimit(c.Int("limit")).
		WithAutocomplete(c.Bool("autocomplete"))
	if bias := c.String("bias"); bias != "" {
		query = query.WithBias(geocoder.CountryBias(strings.ToUpper(bias)))
	}

	results, err := service.Search(ctx, query, strings.ToUpper(c.String("country")))
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found")
		return nil
	}

	for i, r := range results {
		where := r.Country
		if r.Region != "" {
			where = r.Region
		}
		fmt.Printf("%d. %s (%s", i+1, r.PrimaryName, r.Type)
		if where != "" {
			fmt.Printf(", %s", where)
		}
		fmt.Printf(") importance=%.2f lat=%.4f lon=%.4f\n", r.Importance, r.Lat, r.Lon)
	}
	return nil
}
