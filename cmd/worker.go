package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reelforge/reelforge/config"
	"github.com/reelforge/reelforge/pkg/backup"
	"github.com/reelforge/reelforge/pkg/store/sqlite"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run a one-off worker pass against the database without starting the HTTP server",
}

var workerBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "print the row count of each table a backup snapshot would contain",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New(viper.GetViper())
		if err != nil {
			return fmt.Errorf("read configuration: %w", err)
		}

		s, err := sqlite.New(cfg.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		ctx := context.Background()
		if err := s.Init(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		meta, err := backup.Preview(ctx, s)
		if err != nil {
			return fmt.Errorf("preview backup: %w", err)
		}
		for _, m := range meta {
			fmt.Printf("%-24s %d rows\n", m.Table, m.Rows)
		}
		return nil
	},
}

func init() {
	workerCmd.AddCommand(workerBackupCmd)
	rootCmd.AddCommand(workerCmd)
}
