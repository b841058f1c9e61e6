package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/focusmate/internal/metrics"
	fmserver "github.com/HendryAvila/focusmate/internal/server"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if addr := a.cfg.Metrics.Addr; addr != "" {
				srv := &http.Server{
					Addr:              addr,
					Handler:           metrics.SetupMetricsRoute(a.registry),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					a.log.Info("metrics listening", "addr", addr)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.log.Error("metrics server", "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			s := fmserver.New(a.engine, fmserver.Options{DefaultUserID: a.cfg.DefaultUserID})
			a.log.Info("serving MCP on stdio", "backend", a.cfg.Store.Backend, "default_user", a.cfg.DefaultUserID)

			// The stdio server owns its own signal handling; ctx only
			// bounds the store connection and the metrics listener.
			return server.ServeStdio(s)
		},
	}
}
