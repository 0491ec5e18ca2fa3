package main

import (
	"carbonaudit/internal/api"
	"carbonaudit/internal/api/handler/v1handler"
	"carbonaudit/internal/config"
	"carbonaudit/internal/worker"
	"carbonaudit/pkg/logger"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			deps := setupAuditor(ctx, cfg, strg)

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps:          v1handler.Deps{Auditor: deps.auditor},
				Reports:       deps.reports,
				MeterProvider: deps.meterProvider,
			})

			stopWorkers := func(context.Context) {}
			if cfg.Database.Driver == config.DriverPostgres && cfg.Worker.Enabled {
				riverClient, err := worker.Start(ctx, strg.Pool, deps.auditor, worker.NewOptions(cfg))
				if err != nil {
					logger.Fatal(ctx, "could not start workers", zap.Error(err))
				}
				stopWorkers = func(ctx context.Context) {
					logger.Info(ctx, "stopping workers...")
					if err := riverClient.Stop(ctx); err != nil {
						logger.Error(ctx, "could not stop workers", zap.Error(err))
					}
				}
			}

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopWorkers(shutdownCtx)
		},
	}

	return cmd
}
