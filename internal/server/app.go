package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	commentsapp "github.com/philly/medium-blog/internal/comments/application"
	"github.com/philly/medium-blog/internal/platform/eventbus"
	"github.com/philly/medium-blog/internal/platform/logger"
	"github.com/philly/medium-blog/internal/platform/pagecache"
)

type App struct {
	server      *http.Server
	config      Config
	prerenderer *Prerenderer
	scheduler   *Scheduler
	pages       *pagecache.Regenerator
	bus         *eventbus.Bus
	logger      logger.Logger
}

// NewApp assembles the application. The moderation logger is only taken so
// that it is subscribed before the first request.
func NewApp(
	server *http.Server,
	config Config,
	prerenderer *Prerenderer,
	scheduler *Scheduler,
	pages *pagecache.Regenerator,
	bus *eventbus.Bus,
	_ *commentsapp.ModerationQueueLogger,
	log logger.Logger,
) *App {
	return &App{
		server:      server,
		config:      config,
		prerenderer: prerenderer,
		scheduler:   scheduler,
		pages:       pages,
		bus:         bus,
		logger:      log,
	}
}

// Run prerenders the posts, starts the server and handles graceful shutdown
func (a *App) Run(ctx context.Context) error {
	// A failed prerender only costs the first reader a synchronous render.
	if _, err := a.prerenderer.Run(ctx); err != nil {
		a.logger.Error(ctx, "initial prerender failed", "error", err)
	}
	a.scheduler.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "starting server", "addr", a.server.Addr, "environment", a.config.Environment)
		serverErrors <- a.server.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		a.logger.Info(ctx, "received signal, shutting down server", "signal", sig.String())

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			runErr = fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
		a.scheduler.Stop(shutdownCtx)
	}

	a.pages.Wait()
	a.bus.Wait()

	a.logger.Info(ctx, "server stopped")
	return runErr
}
