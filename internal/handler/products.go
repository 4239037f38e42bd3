package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dinetab-pos/api/internal/database"
	"github.com/dinetab-pos/api/internal/money"
	"github.com/go-chi/chi/v5"
)

// ProductStore defines the catalog read methods needed by product handlers.
// The catalog is read-only reference data; there are no write endpoints.
type ProductStore interface {
	ListProductGroups(ctx context.Context) ([]database.ProductGroup, error)
	ListProducts(ctx context.Context) ([]database.Product, error)
	ListProductsByGroup(ctx context.Context, groupID int32) ([]database.Product, error)
	ListProductOptions(ctx context.Context) ([]database.ProductOption, error)
}

// ProductHandler serves the menu catalog.
type ProductHandler struct {
	store ProductStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/product-groups", h.ListGroups)
	r.Get("/products", h.ListProducts)
	r.Get("/product-options", h.ListOptions)
}

// --- Response types ---

type productGroupResponse struct {
	ID          int32  `json:"id"`
	Description string `json:"description"`
}

type productResponse struct {
	ID           int32  `json:"id"`
	Description  string `json:"description"`
	GroupID      int32  `json:"group_id"`
	UnitPrice    int64  `json:"unit_price"`
	PriceDisplay string `json:"price_display"`
	Tax          int64  `json:"tax"`
}

type productOptionResponse struct {
	ID          int32  `json:"id"`
	Description string `json:"description"`
}

// --- Handlers ---

// ListGroups handles GET /product-groups.
func (h *ProductHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListProductGroups(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]productGroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = productGroupResponse{ID: g.ID, Description: g.Description}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListProducts handles GET /products?group_id=N (group filter optional).
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []database.Product
		err      error
	)
	if groupStr := r.URL.Query().Get("group_id"); groupStr != "" {
		groupID, parseErr := strconv.ParseInt(groupStr, 10, 32)
		if parseErr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid group_id"})
			return
		}
		products, err = h.store.ListProductsByGroup(r.Context(), int32(groupID))
	} else {
		products, err = h.store.ListProducts(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = productResponse{
			ID:           p.ID,
			Description:  p.Description,
			GroupID:      p.GroupID,
			UnitPrice:    p.UnitPrice,
			PriceDisplay: money.FormatCents(p.UnitPrice),
			Tax:          p.Tax,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListOptions handles GET /product-options.
func (h *ProductHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.store.ListProductOptions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]productOptionResponse, len(options))
	for i, o := range options {
		resp[i] = productOptionResponse{ID: o.ID, Description: o.Description}
	}
	writeJSON(w, http.StatusOK, resp)
}
