package main

import (
	"carbonaudit"
	"carbonaudit/internal/config"
	"carbonaudit/pkg/logger"
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateRiver brings the river queue tables up to the newest version known
// to the linked river release and returns that version.
func migrateRiver(ctx context.Context, db *sql.DB) (int, error) {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return 0, fmt.Errorf("could not create river migrator: %w", err)
	}

	all := migrator.AllVersions()
	latest := all[len(all)-1].Version

	applied, err := migrator.ExistingVersions(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not list applied river migrations: %w", err)
	}
	if len(applied) > 0 && applied[len(applied)-1].Version >= latest {
		return latest, nil
	}

	if _, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{TargetVersion: latest}); err != nil {
		return 0, fmt.Errorf("could not apply river migrations: %w", err)
	}

	return latest, nil
}

// migrateCommand applies the audit schema with goose and, on postgres, the
// river queue schema.
func migrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := logger.WithFields(context.Background(), zap.String("driver", cfg.Database.Driver))

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			if err := strg.Migrate(ctx, carbonaudit.Migrations); err != nil {
				logger.Fatal(ctx, "could not migrate audit schema", zap.Error(err))
			}

			if cfg.Database.Driver != config.DriverPostgres {
				logger.Info(ctx, "database is up to date")

				return
			}

			version, err := migrateRiver(ctx, strg.SQLDB())
			if err != nil {
				logger.Fatal(ctx, "could not migrate river queue schema", zap.Error(err))
			}
			logger.Info(ctx, "database is up to date", zap.Int("riverVersion", version))
		},
	}
}
