// Command portaldiff compares schema metadata between two HubSpot portals,
// either through a web UI or as a one-shot JSON export.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/johnwards/portaldiff/internal/api"
	"github.com/johnwards/portaldiff/internal/api/exports"
	"github.com/johnwards/portaldiff/internal/api/objects"
	"github.com/johnwards/portaldiff/internal/api/sessions"
	"github.com/johnwards/portaldiff/internal/api/ui"
	"github.com/johnwards/portaldiff/internal/config"
	"github.com/johnwards/portaldiff/internal/database"
	"github.com/johnwards/portaldiff/internal/portal"
	"github.com/johnwards/portaldiff/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "portaldiff",
	Short: "Compare schema metadata between two HubSpot portals",
	Long: `portaldiff fetches property and association definitions from two
HubSpot portals and reports field-level differences: what is identical,
what differs, and what exists on only one side.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the comparison web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	st := store.New(db, cfg.SessionTTL, cfg.CacheTTL, cfg.CleanupInterval)

	opts := []portal.Option{portal.WithRequestTimeout(cfg.RequestTimeout)}
	if cfg.HubSpotBaseURL != "" {
		opts = append(opts, portal.WithBaseURL(cfg.HubSpotBaseURL))
	}
	svc := portal.NewService(st, opts...)

	mux := http.NewServeMux()

	// JSON API routes
	sessions.RegisterRoutes(mux, svc)
	objects.RegisterRoutes(mux, svc)
	exports.RegisterRoutes(mux, svc)

	// Web UI
	ui.RegisterRoutes(mux, svc)

	// Catch-all: unknown routes get the JSON error envelope.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting portaldiff server", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
