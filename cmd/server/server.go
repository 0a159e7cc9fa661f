package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/assetcompass/internal/api"
	"github.com/martinsuchenak/assetcompass/internal/config"
	"github.com/martinsuchenak/assetcompass/internal/log"
	"github.com/martinsuchenak/assetcompass/internal/mcp"
	"github.com/martinsuchenak/assetcompass/internal/storage"
	"github.com/martinsuchenak/assetcompass/internal/worker"
)

// NewHandler builds the full HTTP handler: API routes, the MCP endpoint and
// the middleware chain.
func NewHandler(cfg *config.Config, store storage.Storage) http.Handler {
	mux := http.NewServeMux()

	api.NewHandler(store).RegisterRoutes(mux)

	mcpServer := mcp.NewServer(store)
	mux.HandleFunc("/mcp", mcpServer.HandleRequest)
	log.Debug("MCP tools registered", "count", len(mcpServer.ToolNames()))

	var handler http.Handler = mux
	handler = api.CORSMiddleware(cfg.CORSOrigins, handler)
	handler = api.SecurityHeadersMiddleware(handler)
	handler = api.LoggingMiddleware(handler)
	return handler
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests within the shutdown timeout.
func Run(ctx context.Context, cfg *config.Config, store storage.Storage) error {
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      NewHandler(cfg, store),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting Asset Compass server", "addr", cfg.ListenAddr)
		log.Info("API available", "url", "http://localhost"+cfg.ListenAddr+"/api/")
		log.Info("MCP available", "url", "http://localhost"+cfg.ListenAddr+"/mcp")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// newScheduler registers the periodic database maintenance job.
func newScheduler(cfg *config.Config, store storage.Storage) (*worker.Scheduler, error) {
	scheduler := worker.NewScheduler()
	err := scheduler.Add(worker.Job{
		Name: "database-maintenance",
		Spec: cfg.MaintenanceSchedule,
		Run:  store.Maintain,
	})
	if err != nil {
		return nil, err
	}
	return scheduler, nil
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "server",
		Usage:       "Start the Asset Compass server",
		Description: "Start the HTTP server with the REST API and MCP endpoint",
		Flags:       config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.GetString("config"), cmd)
			if err != nil {
				return err
			}

			log.Info("Configuration loaded", "source", cfg.String(), "data_dir", cfg.DataDir, "listen_addr", cfg.ListenAddr)

			store, err := storage.NewStorage(cfg.DataDir)
			if err != nil {
				log.Error("Failed to initialize storage", "error", err)
				return err
			}
			defer store.Close()
			log.Info("Storage initialized", "backend", "SQLite", "path", cfg.DataDir)

			if cfg.Seed {
				seeded, counts, err := storage.Seed(ctx, store)
				if err != nil {
					return fmt.Errorf("seeding: %w", err)
				}
				if seeded {
					log.Info("Demo inventory loaded", "counts", counts.String())
				} else {
					log.Info("Database not empty, skipping seed")
				}
			}

			if cfg.MaintenanceSchedule != "" {
				scheduler, err := newScheduler(cfg, store)
				if err != nil {
					return err
				}
				scheduler.Start()
				defer scheduler.Stop()
			}

			return Run(ctx, cfg, store)
		},
	}
}
