// Package internal provides the application initialization and runtime logic
// for the terminal, HTTP and MCP front ends.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/notepad/internal/api"
	"github.com/starford/notepad/internal/mcpserver"
	"github.com/starford/notepad/internal/noteservice"
	"github.com/starford/notepad/internal/sse"
	"github.com/starford/notepad/internal/store"
	"github.com/starford/notepad/internal/terminal"
)

// setup validates options, installs the JSON logger writing to defaultLog
// unless overridden, and opens the store. The caller must Close the store.
func setup(ctx context.Context, opts []Option, defaultLog io.Writer) (*application, *slog.Logger, *store.DB, error) {
	app := newApplication(opts)
	if app.config == nil {
		return nil, nil, nil, fmt.Errorf("config is required")
	}
	cfg := app.config

	logOut := app.logOut
	if logOut == nil {
		logOut = defaultLog
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	db, err := store.Open(ctx, cfg.SQLite.Path, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init store: %w", err)
	}
	return app, logger, db, nil
}

// RunTerminal runs the interactive notepad until the user exits.
// Logs go to stderr because stdout carries the screens.
func RunTerminal(ctx context.Context, opts ...Option) error {
	app, logger, db, err := setup(ctx, opts, os.Stderr)
	if err != nil {
		return err
	}
	defer db.Close()

	t := terminal.New(terminal.Config{
		Notes:       noteservice.NewService(db, noteservice.WithLogger(logger)),
		In:          app.in,
		Out:         app.out,
		Logger:      logger,
		AboutText:   app.config.About.Text,
		Interactive: app.interactive,
	})
	return t.Run(ctx)
}

// RunMCP serves the notepad over MCP on stdin/stdout.
// Logs go to stderr because stdout carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, logger, db, err := setup(ctx, opts, os.Stderr)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := noteservice.NewService(db, noteservice.WithLogger(logger))
	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc, app.config.About.Text, app.version).ServeStdio()
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, logger, db, err := setup(ctx, opts, os.Stdout)
	if err != nil {
		return err
	}
	defer db.Close()
	cfg := app.config

	broker := sse.NewBroker(cfg.App.Events.RefreshThrottle)
	broker.Heartbeat = cfg.App.Events.Heartbeat
	defer broker.Close()

	svc := noteservice.NewService(db,
		noteservice.WithLogger(logger),
		noteservice.WithEvents(broker.PublishNoteEvent),
	)
	routerCfg := api.RouterConfig{Events: broker, AboutText: cfg.About.Text}
	if cfg.Auth.AuthEnabled() {
		routerCfg.Token = cfg.Auth.Token
	}
	apiRouter := api.NewRouter(svc, routerCfg)

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
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := db.Count(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Tell SSE clients when the database file changes, including writes
	// from a terminal session running against the same file.
	g.Go(func() error {
		if err := store.Watch(gCtx, cfg.SQLite.Path, cfg.App.Events.WatchDebounce, logger, broker.PublishStoreChanged); err != nil {
			logger.Warn("store watcher disabled", slog.String("error", err.Error()))
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg.App.HTTP))
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

func shutdownTimeout(c HTTPConfig) time.Duration {
	if c.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return c.ShutdownTimeout
}

// errShutdown cancels the errgroup context so the watcher stops with the
// HTTP server.
var errShutdown = errors.New("shutdown")
