// Package mockapi runs an in-memory stand-in for the remote user service.
// It serves the same users resource the client talks to, so the client can
// be developed and tested end to end without the public API.
package mockapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/mockapi/config"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repo   Repository
	echo   *echo.Echo
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	var seed []models.User
	if c.Seed {
		seed = SeedUsers()
	}
	repo := NewMemoryRepository(seed...)

	return &App{config: c, logger: logger, repo: repo, echo: NewServer(repo, logger)}
}

// NewServer builds the echo instance serving repo.
func NewServer(repo Repository, logger logging.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(LoggingMiddleware(logger))

	NewHandler(repo, logger).Register(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}

// Handler exposes the HTTP handler, e.g. for httptest.
func (app *App) Handler() http.Handler {
	return app.echo
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// shuts the server down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info(gctx, "starting mock users API", "addr", app.config.Addr, "seed", app.config.Seed)
		if err := app.echo.Start(app.config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info(gctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		return app.echo.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	app.logger.Info(ctx, "server exited")
	return err
}
