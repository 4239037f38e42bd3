package handler

import (
	"context"
	"net/http"

	"github.com/dinetab-pos/api/internal/database"
	"github.com/dinetab-pos/api/internal/enum"
	"github.com/dinetab-pos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// KitchenServicer defines the lifecycle methods the kitchen display needs.
// Satisfied by *service.OrderService.
type KitchenServicer interface {
	ConfirmOrder(ctx context.Context, orderID uuid.UUID) (database.Order, error)
}

// KitchenReadStore defines the read methods the kitchen display needs.
// Satisfied by *database.Queries.
type KitchenReadStore interface {
	ListOrdersByStatus(ctx context.Context, status string) ([]database.Order, error)
	ListOrderLineDetails(ctx context.Context, orderID uuid.UUID) ([]database.OrderLineDetail, error)
}

// KitchenHandler serves the kitchen queue: placed orders oldest first, and
// the confirm action that acknowledges them.
type KitchenHandler struct {
	svc      KitchenServicer
	store    KitchenReadStore
	notifier Notifier
}

// NewKitchenHandler creates a new KitchenHandler.
func NewKitchenHandler(svc KitchenServicer, store KitchenReadStore, notifier Notifier) *KitchenHandler {
	return &KitchenHandler{svc: svc, store: store, notifier: notifier}
}

// RegisterRoutes registers kitchen endpoints on the given Chi router.
// Expected to be mounted at /kitchen
func (h *KitchenHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders", h.Queue)
	r.Post("/orders/{id}/confirm", h.Confirm)
}

type kitchenQueueResponse struct {
	Orders []orderResponse `json:"orders"`
}

// Queue handles GET /kitchen/orders: PLACED orders in arrival order.
func (h *KitchenHandler) Queue(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrdersByStatus(r.Context(), enum.OrderStatusPlaced)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := kitchenQueueResponse{Orders: make([]orderResponse, len(orders))}
	for i, o := range orders {
		lines, err := h.store.ListOrderLineDetails(r.Context(), o.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp.Orders[i] = dbOrderToResponse(o, lines)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Confirm handles POST /kitchen/orders/{id}/confirm.
func (h *KitchenHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.svc.ConfirmOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	lines, err := h.store.ListOrderLineDetails(r.Context(), order.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := dbOrderToResponse(order, lines)
	notifyKitchen(h.notifier, ws.EventOrderConfirmed, resp)
	writeJSON(w, http.StatusOK, resp)
}
