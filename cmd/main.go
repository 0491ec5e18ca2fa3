// Package main provides the CLI entrypoint for the Carbon Audit service.
// It wires subcommands (serve, migrate, audit), loads configuration, and initializes logging.
package main

import (
	"carbonaudit/internal/config"
	"carbonaudit/pkg/logger"
	"carbonaudit/pkg/storage/sqlstore"
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getStorage opens the configured store and returns it along with a cleanup
// function that closes it.
func getStorage(ctx context.Context, cfg *config.Config) (*sqlstore.Store, func()) {
	var (
		store *sqlstore.Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		store, err = sqlstore.NewSQLite(ctx, cfg.Database.SQLitePath)
	default:
		store, err = sqlstore.NewPostgres(ctx, sqlstore.PostgresOptions{
			Username:           cfg.Database.Username,
			Password:           cfg.Database.Password,
			Host:               cfg.Database.Host,
			Port:               cfg.Database.Port,
			Database:           cfg.Database.DatabaseName,
			ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
			MaxOpenConnections: cfg.Database.MaxOpenConnections,
			MaxIdleConnections: cfg.Database.MaxIdleConnections,
			SslMode:            cfg.Database.SslMode,
		})
	}
	if err != nil {
		logger.Fatal(ctx, "could not create storage", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	return store, func() {
		logger.Info(ctx, "closing storage...")
		if err = store.Close(); err != nil {
			logger.Warn(ctx, "could not close storage", zap.Error(err))
		}
	}
}

// loadConfig reads the YAML file at path. A missing file falls back to
// environment variables and defaults.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Printf("config file %s not found, using environment", path)

		return config.LoadEnv()
	}

	return config.Load(path)
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "carbonaudit",
	}

	// there is no way to access flags before command execution in cobra, so
	// the config path is picked out of the raw arguments. The flag is still
	// declared so cobra accepts it.
	rootCmd.PersistentFlags().StringP("config", "c", defaultConfigPath, "Config File Path")

	log.Println("loading config ...")
	cfg, err := loadConfig(configPath(os.Args[1:]))
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		migrateCommand(cfg),
		serveCommand(cfg),
		auditCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

const defaultConfigPath = "config.yml"

// configPath returns the value of -c/--config anywhere in args.
func configPath(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--":
			return defaultConfigPath
		case arg == "-c" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-c="):
			return strings.TrimPrefix(arg, "-c=")
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}

	return defaultConfigPath
}
