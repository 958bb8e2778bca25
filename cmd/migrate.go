package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelforge/reelforge/config"
	"github.com/reelforge/reelforge/pkg/store/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "run pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New(viper.GetViper())
		if err != nil {
			return fmt.Errorf("read configuration: %w", err)
		}

		s, err := sqlite.New(cfg.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}

		if err := s.Init(context.Background()); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		version, dirty, err := s.MigrationVersion()
		if err != nil {
			return fmt.Errorf("read migration version: %w", err)
		}
		fmt.Printf("migrated to version %d (dirty=%v)\n", version, dirty)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
