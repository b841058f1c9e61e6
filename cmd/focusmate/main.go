// focusmate: productivity profile MCP server
//
// Keeps one structured profile per user (routine, habits, tasks,
// productivity insights, preferences) and exposes it to any MCP-capable
// agent as tools.
//
// Usage:
//
//	focusmate serve          # Start MCP server (stdio transport)
//	focusmate show [user]    # Print a profile summary
//	focusmate seed [user]    # Create the example profile
//	focusmate version
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/focusmate/internal/config"
	"github.com/HendryAvila/focusmate/internal/docstore"
	"github.com/HendryAvila/focusmate/internal/logger"
	"github.com/HendryAvila/focusmate/internal/metrics"
	"github.com/HendryAvila/focusmate/internal/profile"
	fmserver "github.com/HendryAvila/focusmate/internal/server"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "focusmate",
		Short:         "Productivity profile MCP server",
		Long:          `focusmate keeps a structured productivity profile per user and serves it to AI agents over MCP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newShowCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "focusmate %s\n", fmserver.Version)
		},
	}
}

// app holds the dependencies shared by the commands.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	registry *prometheus.Registry
	engine   *profile.Engine
	store    docstore.Handle
}

// openApp loads configuration and connects the configured store.
// The caller must call close.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.LogLevel, nil)

	handle, err := docstore.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	engine := profile.NewEngine(
		docstore.Instrument(handle, collector),
		log,
		profile.WithRecorder(collector),
	)

	log.Debug("store opened", "backend", cfg.Store.Backend)
	return &app{cfg: cfg, log: log, registry: registry, engine: engine, store: handle}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("store close", "error", err)
	}
}

// userFromArgs picks the positional user or the configured default.
func (a *app) userFromArgs(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if a.cfg.DefaultUserID != "" {
		return a.cfg.DefaultUserID, nil
	}
	return "", fmt.Errorf("no user given and %sDEFAULT_USER_ID is not set", config.EnvPrefix)
}
