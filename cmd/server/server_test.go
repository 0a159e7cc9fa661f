package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinsuchenak/assetcompass/internal/config"
	"github.com/martinsuchenak/assetcompass/internal/storage"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DataDir:         t.TempDir(),
		ListenAddr:      "127.0.0.1:0",
		CORSOrigins:     []string{"http://localhost:3000"},
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestNewHandlerChain(t *testing.T) {
	cfg := testConfig(t)
	store, err := storage.NewStorage(cfg.DataDir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(cfg, store)

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w := serve(httptest.NewRequest("GET", "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest("GET", "/api/datacenters", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = serve(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("OPTIONS", "/api/datacenters", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w = serve(req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(httptest.NewRequest("GET", "/api/hosts/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	store, err := storage.NewStorage(cfg.DataDir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, store) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewSchedulerRegistersMaintenance(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaintenanceSchedule = "@daily"
	store, err := storage.NewStorage(cfg.DataDir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	scheduler, err := newScheduler(cfg, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"database-maintenance"}, scheduler.Jobs())
	assert.NoError(t, scheduler.Trigger(t.Context(), "database-maintenance"))

	cfg.MaintenanceSchedule = "not a schedule"
	_, err = newScheduler(cfg, store)
	assert.Error(t, err)
}
