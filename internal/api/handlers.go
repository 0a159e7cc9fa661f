// Package api serves the inventory over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/martinsuchenak/assetcompass/internal/log"
	"github.com/martinsuchenak/assetcompass/internal/storage"
)

// Handler handles HTTP requests
type Handler struct {
	storage storage.Storage
}

// NewHandler creates a new API handler
func NewHandler(s storage.Storage) *Handler {
	return &Handler{storage: s}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("GET /api/health", h.health)

	for _, c := range h.collections() {
		c.register(mux)
	}

	// Relationship listings
	mux.HandleFunc("GET /api/datacenters/{id}/servers", listChildren("Datacenter", h.storage.ListDatacenterServers))
	mux.HandleFunc("GET /api/operating-systems/{id}/hosts", listChildren("Operating system", h.storage.ListOperatingSystemHosts))
	mux.HandleFunc("GET /api/servers/{id}/hosts", listChildren("Server", h.storage.ListServerHosts))
	mux.HandleFunc("GET /api/hosts/{id}/ip-addresses", listChildren("Host", h.storage.ListHostIPAddresses))
	mux.HandleFunc("GET /api/persons/{id}/assignments", listChildren("Person", h.storage.ListPersonAssignments))
}

// root handles GET /
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Asset Compass API"})
}

// health handles GET /api/health
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		log.Error("Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Debug("Failed to write response", "error", err)
	}
}
