package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dinetab-pos/api/internal/database"
	"github.com/dinetab-pos/api/internal/enum"
	"github.com/go-chi/chi/v5"
)

// AreaRegistry defines the registry methods needed by area handlers.
// Satisfied by *service.Registry; narrow interface for testability.
type AreaRegistry interface {
	List(ctx context.Context) ([]database.ServiceArea, error)
	Occupy(ctx context.Context, id int32) error
	Release(ctx context.Context, id int32) error
	ReleaseAll(ctx context.Context) error
}

// AreaHandler handles service-area endpoints.
type AreaHandler struct {
	registry AreaRegistry
}

// NewAreaHandler creates a new AreaHandler.
func NewAreaHandler(registry AreaRegistry) *AreaHandler {
	return &AreaHandler{registry: registry}
}

// RegisterRoutes registers area endpoints on the given Chi router.
// Expected to be mounted at /service-areas
func (h *AreaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/release-all", h.ReleaseAll)
	r.Post("/{id}/occupy", h.Occupy)
	r.Post("/{id}/release", h.Release)
}

// --- Response types ---

type areaResponse struct {
	ID          int32      `json:"id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	OccupiedAt  *time.Time `json:"occupied_at"`
}

// areaListResponse includes the availability summary shown under the
// seating grid.
type areaListResponse struct {
	Areas     []areaResponse `json:"areas"`
	Available int            `json:"available"`
	Occupied  int            `json:"occupied"`
	Total     int            `json:"total"`
}

// --- Handlers ---

// List handles GET /service-areas.
func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := h.registry.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := areaListResponse{Areas: make([]areaResponse, len(areas))}
	for i, a := range areas {
		resp.Areas[i] = dbAreaToResponse(a)
		if a.Status == enum.AreaStatusOccupied {
			resp.Occupied++
		} else {
			resp.Available++
		}
	}
	resp.Total = len(areas)

	writeJSON(w, http.StatusOK, resp)
}

// Occupy handles POST /service-areas/{id}/occupy.
func (h *AreaHandler) Occupy(w http.ResponseWriter, r *http.Request) {
	id, ok := areaIDParam(w, r)
	if !ok {
		return
	}
	if err := h.registry.Occupy(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"id": id})
}

// Release handles POST /service-areas/{id}/release. Idempotent: releasing an
// available area succeeds.
func (h *AreaHandler) Release(w http.ResponseWriter, r *http.Request) {
	id, ok := areaIDParam(w, r)
	if !ok {
		return
	}
	if err := h.registry.Release(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"id": id})
}

// ReleaseAll handles POST /service-areas/release-all.
func (h *AreaHandler) ReleaseAll(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.ReleaseAll(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Helpers ---

func areaIDParam(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid service area ID"})
		return 0, false
	}
	return int32(id), true
}

func dbAreaToResponse(a database.ServiceArea) areaResponse {
	resp := areaResponse{
		ID:          a.ID,
		Description: a.Description,
		Status:      a.Status,
	}
	if a.OccupiedAt.Valid {
		t := a.OccupiedAt.Time
		resp.OccupiedAt = &t
	}
	return resp
}
