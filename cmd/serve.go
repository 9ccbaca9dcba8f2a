// File: cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/exposcan/internal/observability"
	"github.com/xkilldash9x/exposcan/internal/server"
)

// newServeCmd creates and configures the `serve` command.
func newServeCmd() *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs the exposure scan HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			if addr != "" {
				cfg.Server.Addr = addr
			}

			c, err := initializeComponents(ctx, cfg, true, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize server components: %w", err)
			}
			defer c.Shutdown()

			srv := server.New(c.Orchestrator, c.Store, logger)
			httpServer := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      srv.Routes(),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP API listening", zap.String("addr", cfg.Server.Addr))
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				logger.Info("Shutdown signal received, draining connections")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("server shutdown failed: %w", err)
				}
				return nil
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			}
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config/env, default :8080)")

	return serveCmd
}
