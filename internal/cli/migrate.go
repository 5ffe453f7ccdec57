package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-club-seat-reservation/internal/config"
	"github.com/sanosuguru/go-club-seat-reservation/internal/infrastructure/postgres"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/logger"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openPostgres(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.RunMigrations(db.DB, cfg.Store.MigrationsPath); err != nil {
				return err
			}
			logger.Info("マイグレーション完了", zap.String("path", cfg.Store.MigrationsPath))
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps は1以上を指定してください: %d", steps)
			}
			db, err := openPostgres(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.RollbackMigrations(db.DB, cfg.Store.MigrationsPath, steps); err != nil {
				return err
			}
			logger.Info("マイグレーションをロールバック", zap.Int("steps", steps))
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openPostgres(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			v, dirty, err := postgres.MigrationVersion(db.DB, cfg.Store.MigrationsPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
			return nil
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}
