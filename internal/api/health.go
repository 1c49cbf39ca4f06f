package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nayeemhs/uniassist/internal/catalog"
	"github.com/nayeemhs/uniassist/internal/store"
)

// HealthHandler reports service liveness and dependency state.
type HealthHandler struct {
	repo        store.Repository
	catalog     *catalog.Catalog
	chatEnabled bool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(repo store.Repository, c *catalog.Catalog, chatEnabled bool) *HealthHandler {
	return &HealthHandler{repo: repo, catalog: c, chatEnabled: chatEnabled}
}

// RegisterRoutes registers the root and health endpoints.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/healthz", h.Health)
}

// Root handles GET /: basic service information.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"message":            "University Admission Assistant API",
		"status":             "running",
		"total_universities": h.catalog.Len(),
	})
}

// Health handles GET /healthz: verifies database connectivity.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	status := http.StatusOK
	if err := h.repo.Ping(ctx); err != nil {
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	JSON(w, status, map[string]interface{}{
		"status":       dbStatus,
		"chat_enabled": h.chatEnabled,
	})
}
