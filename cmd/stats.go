package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show the active catalog version and its shards",
		Action: func(ctx context.Context, c *cli.Command) error {
			return showStats(ctx, c)
		},
	}
}

func showStats(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	version, col, err := service.Collection(ctx)
	if err != nil {
		return fmt.Errorf("loading collection: %w", err)
	}

	fmt.Printf("Version: %s\n", version)

	if len(col.Items) == 0 {
		fmt.Println("No embedded shard metadata (legacy collection)")
		return nil
	}

	shardIDs := make([]string, 0, len(col.Items))
	for id := range col.Items {
		shardIDs = append(shardIDs, id)
	}
	sort.Strings(shardIDs)

	fmt.Printf("Shards: %d\n", len(shardIDs))
	for _, id := range shardIDs {
		item := col.Items[id]
		fmt.Printf("  %-6s %10d records %12d bytes\n", id, item.RecordCount, item.SizeBytes)
	}
	return nil
}
