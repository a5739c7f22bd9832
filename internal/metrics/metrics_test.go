package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/matlog/internal/service"
	"github.com/labstack/echo/v4"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUseCase_CountsOutcomes(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "delete-subtree", Success: true, Duration: 3 * time.Millisecond})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "delete-subtree", Success: true})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "delete-subtree", Err: errors.New("conflict")})

	assert.Equal(t, 2.0, promtest.ToFloat64(m.useCases.WithLabelValues("delete-subtree", "success")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.useCases.WithLabelValues("delete-subtree", "error")))
	assert.Equal(t, 1, promtest.CollectAndCount(m.useCaseDuration))
}

func TestMiddleware_LabelsByRoute(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/moves/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "move not found")
		}
		return c.NoContent(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/moves/"+id, nil))
	}

	assert.Equal(t, 2.0, promtest.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/moves/:id", "200")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/moves/:id", "404")))
}

func TestMiddleware_ErrorResponseWrittenOnce(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusConflict, "try again")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "try again"))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "create-move", Success: true})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `matlog_use_case_total{outcome="success",use_case="create-move"} 1`)
	assert.Contains(t, body, "matlog_use_case_duration_seconds_bucket")
}
