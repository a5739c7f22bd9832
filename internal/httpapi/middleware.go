package httpapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/matlog/internal/auth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequireAuth verifies the bearer token and stores the caller's identity on
// the request context. The token subject is the only source of owner ids.
func RequireAuth(verifier auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token, err := auth.BearerToken(req.Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			id, err := verifier.Verify(req.Context(), token)
			if err != nil {
				return err
			}
			c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}

// OperationTimeout bounds every request with a deadline.
func OperationTimeout(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d <= 0 {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequestLogger writes one slog record per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error.Error())
			}
			logger.InfoContext(c.Request().Context(), "http_request", attrs...)
			return nil
		},
	})
}

func ownerID(c echo.Context) (string, error) {
	id, ok := auth.FromContext(c.Request().Context())
	if !ok || id.Subject == "" {
		return "", auth.ErrUnauthenticated
	}
	return id.Subject, nil
}
