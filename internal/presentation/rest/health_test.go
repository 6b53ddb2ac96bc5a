package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		mux := http.NewServeMux()
		NewHealthHandler(nil, testLogger()).RegisterRoutes(mux)

		rec := do(t, mux, http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[HealthResponse](t, rec)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "risk-service", resp.Service)
	})

	t.Run("readyz all ok", func(t *testing.T) {
		mux := http.NewServeMux()
		NewHealthHandler(map[string]ReadinessCheck{
			"database": func(context.Context) error { return nil },
		}, testLogger()).RegisterRoutes(mux)

		rec := do(t, mux, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]string{"database": "ok"}, decode[ReadinessResponse](t, rec).Checks)
	})

	t.Run("readyz failing check", func(t *testing.T) {
		mux := http.NewServeMux()
		NewHealthHandler(map[string]ReadinessCheck{
			"database": func(context.Context) error { return errors.New("connection refused") },
		}, testLogger()).RegisterRoutes(mux)

		rec := do(t, mux, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decode[ReadinessResponse](t, rec)
		assert.Equal(t, "not_ready", resp.Status)
		assert.Equal(t, "unavailable", resp.Checks["database"])
	})
}

func TestRequestLogger_RecoversPanic(t *testing.T) {
	h := RequestLogger(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := do(t, h, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrorResponse{Message: "internal error"}, decode[ErrorResponse](t, rec))
}
