package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err    error
	called bool
}

func (pinger *stubPinger) Ping(ctx context.Context) error {
	pinger.called = true
	return pinger.err
}

func TestHealth(t *testing.T) {
	handler := New(&stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.NotEmpty(t, body["time"])
}

func TestReady(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		pinger := &stubPinger{}
		handler := New(pinger)

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, pinger.called)
	})

	t.Run("database unreachable", func(t *testing.T) {
		pinger := &stubPinger{err: errors.New("connection refused")}
		handler := New(pinger)

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
