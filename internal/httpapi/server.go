// Package httpapi serves the move store over HTTP with echo.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/matlog/internal/auth"
	"github.com/alexanderramin/matlog/internal/metrics"
	"github.com/alexanderramin/matlog/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownGrace = 15 * time.Second

// Options wires the server's collaborators. Metrics and Ping are optional.
type Options struct {
	Moves     service.MoveService
	Verifier  auth.Verifier
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	OpTimeout time.Duration

	// Ping reports datastore health for /healthz.
	Ping func(ctx context.Context) error
}

// New builds the echo instance with every route registered.
func New(opts Options) *echo.Echo {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newErrorHandler(e, logger)

	if opts.Metrics != nil {
		e.Use(opts.Metrics.Middleware())
	}
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/healthz", healthHandler(opts.Ping))
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}

	api := e.Group("/api", RequireAuth(opts.Verifier), OperationTimeout(opts.OpTimeout))
	api.POST("/moves", CreateMoveHandler(opts.Moves))
	api.GET("/moves/:id", GetMoveHandler(opts.Moves))
	api.PATCH("/moves/:id", PatchMoveHandler(opts.Moves))
	api.DELETE("/moves/:id", DeleteMoveHandler(opts.Moves))
	api.GET("/plans", ListPlansHandler(opts.Moves))
	api.GET("/plans/:plan/moves", PlanMovesHandler(opts.Moves))
	api.GET("/plans/:plan/tree", PlanTreeHandler(opts.Moves))
	api.DELETE("/plans/:plan", DeletePlanHandler(opts.Moves))

	return e
}

func healthHandler(ping func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ping != nil {
			if err := ping(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "datastore unavailable").SetInternal(err)
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Serve runs e on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	graceful, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := e.Shutdown(graceful); err != nil {
		return fmt.Errorf("shutting down http: %w", err)
	}
	return nil
}
