// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/castellan/internal/api"
	"github.com/starford/castellan/internal/castleservice"
	"github.com/starford/castellan/internal/catalog"
	"github.com/starford/castellan/internal/mcpserver"
	"github.com/starford/castellan/internal/sse"
)

// NewLogger builds the structured JSON logger and installs it as the
// process default.
func NewLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Run starts the preview server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	rt := &runtime{}

	for _, opt := range opts {
		opt(rt)
	}

	if rt.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := rt.config
	logger := rt.logger
	if logger == nil {
		logger = NewLogger(cfg)
	}

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_dir", cfg.Data.Dir),
		slog.String("catalog_path", cfg.Catalog.Path),
		slog.String("site_dir", cfg.Site.OutputDir),
		slog.String("log_level", cfg.App.LogLevel.String()))

	pipe, err := NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	col := pipe.Collection()

	// Initialize SQLite catalog.
	db, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}
	defer db.Close()

	// Run initial sync and render.
	if err := catalog.Sync(db, col.Load(), logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}
	if err := pipe.Render(); err != nil {
		logger.Warn("initial render failed", slog.String("error", err.Error()))
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Build API service and router.
	svc := castleservice.NewService(col, db)
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Serve the rendered site at the root.
	r.Handle("/*", http.FileServer(http.Dir(cfg.Site.OutputDir)))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the data directory: rebuild catalog and site on change.
	g.Go(func() error {
		return catalog.Watch(gCtx, cfg.Data.Dir, logger, func() {
			castles := col.Load()
			if err := catalog.Sync(db, castles, logger); err != nil {
				logger.Warn("resync failed", slog.String("error", err.Error()))
			}
			if err := pipe.Render(); err != nil {
				logger.Warn("re-render failed", slog.String("error", err.Error()))
			}
			broker.PublishDataEvent("collection", "")
		})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the MCP server over stdio. Logs go to stderr so stdout
// stays clean for the protocol stream.
func RunMCP(cfg *Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	pipe, err := NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	db, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}
	defer db.Close()

	col := pipe.Collection()
	if err := catalog.Sync(db, col.Load(), logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	svc := castleservice.NewService(col, db)
	return mcpserver.New(svc).ServeStdio()
}
