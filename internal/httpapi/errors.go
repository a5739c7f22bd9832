package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/matlog/internal/auth"
	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto status codes. Storage details stay in
// the log, not the response.
func toHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	switch {
	case errors.Is(err, domain.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found").SetInternal(err)
	case errors.Is(err, domain.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "concurrent modification, retry the request").SetInternal(err)
	case errors.Is(err, auth.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required").SetInternal(err)
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "operation timed out").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "unexpected error").SetInternal(err)
	}
}

func newErrorHandler(e *echo.Echo, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		he := toHTTPError(err)
		if he.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"route", c.Path(),
				"status", he.Code,
				"error", err.Error(),
			)
		}
		if he.Code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		e.DefaultHTTPErrorHandler(he, c)
	}
}
