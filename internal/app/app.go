package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"daychat/internal/config"
	"daychat/internal/core"
	"daychat/internal/retention"
	"daychat/internal/store"
	"daychat/internal/store/sqlite"
	transporthttp "daychat/internal/transport/http"
)

// App wires together the relay core, persistence, retention and the
// HTTP transport.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           store.MessageStore
	purger          *retention.Purger
	log             *zerolog.Logger
}

// New constructs the application with provided configuration. A store
// initialization failure is not fatal: the relay keeps serving
// connections without persistence and the failure is logged once here.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	var st store.MessageStore
	if sqliteStore, err := sqlite.New(cfg.DatabasePath); err != nil {
		logger.Error().Err(err).Str("db_path", cfg.DatabasePath).Msg("store init failed, running without persistence")
	} else {
		logger.Info().Str("db_path", cfg.DatabasePath).Msg("database initialized")
		st = sqliteStore
	}

	hub := core.NewHub(st, logger)
	server := transporthttp.NewServer(hub, st, cfg, logger)

	var purger *retention.Purger
	if st != nil {
		purger = retention.New(st, logger)
	}

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		store:           st,
		purger:          purger,
		log:             logger,
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)
	if a.purger != nil {
		go a.purger.Run(ctx)
	}

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the store if one was opened.
func (a *App) cleanup() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close store")
	} else {
		a.log.Info().Msg("store closed")
	}
}
