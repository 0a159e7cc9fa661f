package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martinsuchenak/assetcompass/internal/storage"
)

// setupTestHandler returns a mux with all routes over a fresh SQLite store.
func setupTestHandler(t *testing.T) (*http.ServeMux, *storage.SQLiteStorage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mux := http.NewServeMux()
	NewHandler(store).RegisterRoutes(mux)
	return mux, store
}

// do sends a request with an optional JSON body and returns the recorder.
func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
}

func datacenterBody(id string) map[string]any {
	return map[string]any{"id": id, "name": "DC " + id, "location": "New York, NY"}
}

func serverBody(id, dcID string) map[string]any {
	return map[string]any{
		"id": id, "hostname": id, "datacenter_id": dcID,
		"model": "Dell PowerEdge R750", "serial_number": "SN-" + id, "status": "online",
	}
}

func hostBody(id, serverID string) map[string]any {
	return map[string]any{
		"id": id, "hostname": id, "server_id": serverID,
		"type": "vm", "status": "running", "cpu": 4, "memory_gb": 16,
	}
}

func personBody(id, email string) map[string]any {
	return map[string]any{"id": id, "name": "Person " + id, "email": email, "role": "Engineer", "department": "IT"}
}
