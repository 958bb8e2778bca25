package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelforge/reelforge/config"
	"github.com/reelforge/reelforge/pkg/indexer"
	"github.com/reelforge/reelforge/pkg/logger"
	"github.com/reelforge/reelforge/pkg/store/sqlite"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "search every enabled indexer and print the releases found",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New(viper.GetViper())
		if err != nil {
			return fmt.Errorf("read configuration: %w", err)
		}
		log := logger.Get()

		s, err := sqlite.New(cfg.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		ctx := context.Background()
		if err := s.Init(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		client, err := buildIndexerClient(cfg)
		if err != nil {
			return fmt.Errorf("build indexer client: %w", err)
		}

		configs, err := s.ListIndexerConfigs(ctx)
		if err != nil {
			return fmt.Errorf("list indexers: %w", err)
		}

		mediaType := indexer.MediaMovie
		if show, err := cmd.Flags().GetBool("show"); err == nil && show {
			mediaType = indexer.MediaSeries
		}

		query := args[0]
		found := 0
		for _, ic := range configs {
			if !ic.Enabled {
				continue
			}
			releases, err := client.Search(ctx, ic.ID, mediaType, query)
			if err != nil {
				log.Warnw("search failed", "indexer", ic.Name, "err", err)
				continue
			}
			for _, r := range releases {
				log.Infow(fmt.Sprintf("found %s", r.Title),
					"indexer", r.Indexer,
					"size", humanize.Bytes(uint64(r.Size)),
					"seeders", r.Seeders,
				)
			}
			found += len(releases)
		}

		fmt.Printf("%d releases found for %q\n", found, query)
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("movie", true, "search movie categories")
	searchCmd.Flags().Bool("show", false, "search tv categories instead of movies")
	rootCmd.AddCommand(searchCmd)
}
