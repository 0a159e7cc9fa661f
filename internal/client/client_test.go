package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinsuchenak/assetcompass/internal/api"
	"github.com/martinsuchenak/assetcompass/internal/model"
	"github.com/martinsuchenak/assetcompass/internal/storage"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	store, err := storage.NewSQLiteStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mux := http.NewServeMux()
	api.NewHandler(store).RegisterRoutes(mux)

	srv := httptest.NewServer(api.LoggingMiddleware(mux))
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", 5*time.Second)
}

func TestClientRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := t.Context()

	require.NoError(t, c.Health(ctx))

	raw, err := c.Create(ctx, "persons", []byte(`{"id":"per-1","name":"John Smith","email":"john@example.com","role":"Admin","department":"IT"}`))
	require.NoError(t, err)
	var p model.Person
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "per-1", p.ID)

	raw, err = c.Update(ctx, "persons", "per-1", []byte(`{"name":"John Smith","email":"john.smith@example.com","role":"Admin","department":"IT"}`))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "john.smith@example.com", p.Email)

	raw, err = c.List(ctx, "persons", model.DefaultPage(), nil)
	require.NoError(t, err)
	var list []model.Person
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 1)

	_, err = c.Create(ctx, "assignments", []byte(`{"person_id":"per-1","entity_type":"ip","entity_id":"ip-1","role":"viewer"}`))
	require.NoError(t, err)
	raw, err = c.ListChildren(ctx, "persons", "per-1", "assignments", model.DefaultPage())
	require.NoError(t, err)
	assert.JSONEq(t, `"ip-1"`, string(mustField(t, raw, 0, "entity_id")))

	raw, err = c.List(ctx, "assignments", model.DefaultPage(), url.Values{"entity_type": {"host"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	_, err = c.Delete(ctx, "persons", "per-1")
	require.Error(t, err, "person with assignments cannot be deleted")

	_, err = c.Get(ctx, "persons", "per-404")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.Kind)
}

func TestClientValidationError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Create(t.Context(), "hosts", []byte(`{"hostname":"h"}`))
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Fields, "server_id")
	assert.Contains(t, apiErr.Error(), "server_id")
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, time.Second).Get(t.Context(), "hosts", "x")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func mustField(t *testing.T, raw json.RawMessage, index int, field string) json.RawMessage {
	t.Helper()
	var items []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Greater(t, len(items), index)
	return items[index][field]
}
