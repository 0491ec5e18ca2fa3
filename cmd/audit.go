package main

import (
	"carbonaudit/internal/api/handler/v1handler"
	"carbonaudit/internal/auditor"
	"carbonaudit/internal/config"
	"carbonaudit/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// auditCommand runs a single audit without starting the web server and
// prints the result as JSON.
func auditCommand(cfg *config.Config) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audits a single URL and prints the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			deps := setupAuditor(ctx, cfg, strg)

			res, err := deps.auditor.Audit(ctx, auditor.Request{URL: target, RequesterID: "cli"})
			if err != nil {
				fields := []zap.Field{zap.String("url", target), zap.Error(err)}
				var auditErr *auditor.Error
				if errors.As(err, &auditErr) {
					fields = append(fields, zap.Stringer("auditID", auditErr.ID))
				}
				logger.Error(ctx, "audit failed", fields...)

				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(v1handler.NewCreateAuditResponse(res))
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&target, "url", "u", "", "URL to audit")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}
