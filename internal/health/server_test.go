package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, c *Checker, path string) (*httptest.ResponseRecorder, ReadyResponse) {
	t.Helper()
	mux := http.NewServeMux()
	c.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestLiveAndHealthAlwaysOK(t *testing.T) {
	c := NewChecker(Config{ServiceName: "tt-value", Version: "1.0.0"})
	for _, path := range []string{"/health", "/live"} {
		rec, body := serve(t, c, path)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "tt-value", body.Service)
	}
}

func TestReadyRequiresSetReady(t *testing.T) {
	c := NewChecker(Config{ServiceName: "tt-value"})

	rec, body := serve(t, c, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", body.Checks["service"])

	c.SetReady(true)
	rec, body = serve(t, c, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body.Status)
}

func TestReadyReportsFailingDependency(t *testing.T) {
	c := NewChecker(Config{ServiceName: "tt-value"})
	c.SetReady(true)
	c.AddCheck("database", pingFunc(func(context.Context) error { return nil }))
	c.AddCheck("market", pingFunc(func(context.Context) error { return errors.New("circuit breaker open") }))

	rec, body := serve(t, c, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", body.Status)
	assert.Equal(t, "ok", body.Checks["database"])
	assert.Equal(t, "error: circuit breaker open", body.Checks["market"])
}
