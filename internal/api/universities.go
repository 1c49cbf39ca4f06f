package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nayeemhs/uniassist/internal/catalog"
)

// UniversityHandler serves the static university catalog.
type UniversityHandler struct {
	catalog *catalog.Catalog
}

// NewUniversityHandler creates a new university handler.
func NewUniversityHandler(c *catalog.Catalog) *UniversityHandler {
	return &UniversityHandler{catalog: c}
}

// RegisterRoutes registers university routes.
func (h *UniversityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/universities", h.List)
}

// List handles GET /api/universities.
func (h *UniversityHandler) List(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"universities": h.catalog.Universities(),
		"total":        h.catalog.Len(),
	})
}
