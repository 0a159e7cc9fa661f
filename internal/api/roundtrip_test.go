package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinsuchenak/assetcompass/internal/storage"
)

type jsonObject = map[string]any

func assertFields(t *testing.T, want, got jsonObject) {
	t.Helper()
	for k, v := range want {
		assert.EqualValues(t, v, got[k], "field %s", k)
	}
}

func timestamp(t *testing.T, record jsonObject, key string) time.Time {
	t.Helper()
	s, ok := record[key].(string)
	require.True(t, ok, "%s missing from %v", key, record)
	ts, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	return ts
}

func TestRoundTripEveryCollection(t *testing.T) {
	mux, store := setupTestHandler(t)
	_, _, err := storage.Seed(context.Background(), store)
	require.NoError(t, err)

	tests := []struct {
		path       string
		id         string
		create     jsonObject
		update     jsonObject
		hasUpdated bool
	}{
		{
			path:       "/api/datacenters",
			id:         "dc-rt",
			create:     jsonObject{"name": "DC-North-01", "location": "Boston, MA", "description": "North region"},
			update:     jsonObject{"name": "DC-North-02", "location": "Portland, ME", "description": nil},
			hasUpdated: true,
		},
		{
			path:       "/api/operating-systems",
			id:         "os-rt",
			create:     jsonObject{"name": "Rocky Linux", "version": "9", "vendor": "RESF", "eol_date": "2032-05-31"},
			update:     jsonObject{"name": "Rocky Linux", "version": "9.4", "vendor": "CIQ", "eol_date": "mid 2032"},
			hasUpdated: true,
		},
		{
			path:       "/api/servers",
			id:         "srv-rt",
			create:     jsonObject{"hostname": "srv-bos-01", "datacenter_id": "dc-1", "model": "Dell R650", "serial_number": "DL650001", "status": "online"},
			update:     jsonObject{"hostname": "srv-bos-01", "datacenter_id": "dc-2", "model": "Dell R660", "serial_number": "DL660001", "status": "maintenance"},
			hasUpdated: true,
		},
		{
			path:       "/api/hosts",
			id:         "host-rt",
			create:     jsonObject{"hostname": "app-01", "server_id": "srv-1", "os_id": "os-1", "type": "vm", "status": "running", "cpu": 4, "memory_gb": 16},
			update:     jsonObject{"hostname": "app-01", "server_id": "srv-2", "os_id": nil, "type": "container", "status": "suspended", "cpu": 0, "memory_gb": 2},
			hasUpdated: true,
		},
		{
			path:       "/api/ip-addresses",
			id:         "ip-rt",
			create:     jsonObject{"address": "10.9.9.9", "host_id": "host-1", "type": "ipv4", "allocation": "static"},
			update:     jsonObject{"address": "fd00::9", "host_id": nil, "type": "ipv6", "allocation": "reserved"},
			hasUpdated: true,
		},
		{
			path:       "/api/persons",
			id:         "per-rt",
			create:     jsonObject{"name": "Dana Lee", "email": "dana.lee@company.com", "role": "SRE", "department": "Engineering", "phone": "+1-555-0199"},
			update:     jsonObject{"name": "Dana Lee", "email": "dana@company.com", "role": "Staff SRE", "department": "Platform", "phone": nil},
			hasUpdated: true,
		},
		{
			path:   "/api/assignments",
			id:     "assign-rt",
			create: jsonObject{"person_id": "per-1", "entity_type": "server", "entity_id": "srv-1", "role": "owner"},
			update: jsonObject{"person_id": "per-2", "entity_type": "host", "entity_id": "host-2", "role": "viewer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			body := jsonObject{"id": tt.id}
			for k, v := range tt.create {
				body[k] = v
			}
			w := do(t, mux, "POST", tt.path, body)
			requireStatus(t, w, http.StatusCreated)

			item := tt.path + "/" + tt.id
			w = do(t, mux, "GET", item, nil)
			requireStatus(t, w, http.StatusOK)
			got := decode[jsonObject](t, w)
			assert.Equal(t, tt.id, got["id"])
			assertFields(t, tt.create, got)
			createdAt := timestamp(t, got, "created_at")

			var updatedAt time.Time
			if tt.hasUpdated {
				updatedAt = timestamp(t, got, "updated_at")
			} else {
				assert.NotContains(t, got, "updated_at")
			}

			w = do(t, mux, "PUT", item, tt.update)
			requireStatus(t, w, http.StatusOK)

			w = do(t, mux, "GET", item, nil)
			requireStatus(t, w, http.StatusOK)
			got = decode[jsonObject](t, w)
			assert.Equal(t, tt.id, got["id"])
			assertFields(t, tt.update, got)
			assert.True(t, createdAt.Equal(timestamp(t, got, "created_at")), "created_at changed")

			if tt.hasUpdated {
				assert.False(t, timestamp(t, got, "updated_at").Before(updatedAt), "updated_at went backwards")
			} else {
				assert.NotContains(t, got, "updated_at")
			}
		})
	}
}
