// File: internal/handler/health_test.go
package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mamacare/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newCtx(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHealthHandler(t *testing.T) {
	c, rec := newCtx(t)

	require.NoError(t, HealthHandler("development")(c))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"success":true`)
	require.Contains(t, body, `"status":"ok"`)
	require.Contains(t, body, `"environment":"development"`)
	require.Contains(t, body, `"uptime"`)
}

func TestPingHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := &database.FakeDB{
			PingFn: func(ctx context.Context) error { return nil },
		}
		c, rec := newCtx(t)

		require.NoError(t, PingHandler(db)(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"message":"pong"`)
	})

	t.Run("database down", func(t *testing.T) {
		db := &database.FakeDB{
			PingFn: func(ctx context.Context) error { return errors.New("dial failed") },
		}
		c, rec := newCtx(t)

		require.NoError(t, PingHandler(db)(c))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "database unhealthy")
	})
}
