package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dinetab-pos/api/internal/database"
	"github.com/dinetab-pos/api/internal/money"
	"github.com/dinetab-pos/api/internal/service"
	"github.com/dinetab-pos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderServicer defines the lifecycle methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	GetOrCreateOpenOrder(ctx context.Context, areaID int32) (database.Order, error)
	AddLine(ctx context.Context, orderID uuid.UUID, productID int32, option string) (database.Order, error)
	AdjustQuantity(ctx context.Context, orderID uuid.UUID, lineIndex int, delta int32) (database.Order, error)
	PlaceOrder(ctx context.Context, orderID uuid.UUID) (database.Order, error)
}

// OrderReadStore defines the read methods order handlers use to render the
// cart. Satisfied by *database.Queries.
type OrderReadStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrderLineDetails(ctx context.Context, orderID uuid.UUID) ([]database.OrderLineDetail, error)
}

// Notifier pushes events to connected displays. Satisfied by *ws.Hub.
type Notifier interface {
	Broadcast(channel string, event ws.Event)
}

// OrderHandler handles cart and order lifecycle endpoints.
type OrderHandler struct {
	svc      OrderServicer
	store    OrderReadStore
	notifier Notifier
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderReadStore, notifier Notifier) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, notifier: notifier}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}", h.Get)
	r.Post("/{id}/lines", h.AddLine)
	r.Patch("/{id}/lines/{index}", h.AdjustLine)
	r.Post("/{id}/place", h.Place)
}

// --- Request / Response types ---

type addLineRequest struct {
	ProductID int32  `json:"product_id"`
	Option    string `json:"option"`
}

type adjustLineRequest struct {
	Delta int32 `json:"delta"`
}

type orderLineResponse struct {
	ProductID   int32   `json:"product_id"`
	Description string  `json:"description"`
	Option      *string `json:"option"`
	Quantity    int32   `json:"quantity"`
	UnitPrice   int64   `json:"unit_price"`
	LineTotal   int64   `json:"line_total"`
}

type orderResponse struct {
	ID              uuid.UUID           `json:"id"`
	ServiceAreaID   int32               `json:"service_area_id"`
	Status          string              `json:"status"`
	Subtotal        int64               `json:"subtotal"`
	SubtotalDisplay string              `json:"subtotal_display"`
	Charged         int64               `json:"charged"`
	CreatedAt       time.Time           `json:"created_at"`
	Lines           []orderLineResponse `json:"lines"`
}

// --- Handlers ---

// Open handles POST /service-areas/{id}/order: it returns the area's open
// order, creating an empty one when the cart is first populated.
func (h *OrderHandler) Open(w http.ResponseWriter, r *http.Request) {
	areaID, ok := areaIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.svc.GetOrCreateOpenOrder(r.Context(), areaID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.respondWithOrder(w, r, http.StatusOK, order)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = service.ErrOrderNotFound
		}
		writeServiceError(w, err)
		return
	}

	h.respondWithOrder(w, r, http.StatusOK, order)
}

// AddLine handles POST /orders/{id}/lines.
func (h *OrderHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ProductID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product_id is required"})
		return
	}

	order, err := h.svc.AddLine(r.Context(), orderID, req.ProductID, req.Option)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.respondWithOrder(w, r, http.StatusOK, order)
}

// AdjustLine handles PATCH /orders/{id}/lines/{index} with a quantity delta.
// A quantity that reaches zero removes the line.
func (h *OrderHandler) AdjustLine(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid line index"})
		return
	}

	var req adjustLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Delta == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "delta must be non-zero"})
		return
	}

	order, err := h.svc.AdjustQuantity(r.Context(), orderID, index, req.Delta)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.respondWithOrder(w, r, http.StatusOK, order)
}

// Place handles POST /orders/{id}/place: the cart is handed to the kitchen.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.svc.PlaceOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := h.buildOrderResponse(r.Context(), order)
	notifyKitchen(h.notifier, ws.EventOrderPlaced, resp)
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func (h *OrderHandler) respondWithOrder(w http.ResponseWriter, r *http.Request, status int, order database.Order) {
	writeJSON(w, status, h.buildOrderResponse(r.Context(), order))
}

func (h *OrderHandler) buildOrderResponse(ctx context.Context, order database.Order) orderResponse {
	lines, err := h.store.ListOrderLineDetails(ctx, order.ID)
	if err != nil {
		// The order itself is committed; render it with an empty cart
		// rather than failing the whole response.
		log.Printf("ERROR: list lines for order %s: %v", order.ID, err)
	}
	return dbOrderToResponse(order, lines)
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return uuid.Nil, false
	}
	return id, true
}

func dbOrderToResponse(order database.Order, lines []database.OrderLineDetail) orderResponse {
	resp := orderResponse{
		ID:              order.ID,
		ServiceAreaID:   order.ServiceAreaID,
		Status:          order.Status,
		Subtotal:        order.Subtotal,
		SubtotalDisplay: money.FormatCents(order.Subtotal),
		Charged:         order.Charged,
		CreatedAt:       order.CreatedAt,
		Lines:           make([]orderLineResponse, len(lines)),
	}
	for i, l := range lines {
		resp.Lines[i] = dbLineToResponse(l)
	}
	return resp
}

func dbLineToResponse(l database.OrderLineDetail) orderLineResponse {
	resp := orderLineResponse{
		ProductID:   l.ProductID,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		LineTotal:   l.UnitPrice * int64(l.Quantity),
	}
	if l.Option != "" {
		opt := l.Option
		resp.Option = &opt
	}
	return resp
}

// notifyKitchen broadcasts an event to the kitchen display channel. A nil
// notifier (unit tests) is a no-op.
func notifyKitchen(n Notifier, eventType string, payload any) {
	if n == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: marshal %s event: %v", eventType, err)
		return
	}
	n.Broadcast(ws.ChannelKitchen, ws.Event{Type: eventType, Payload: raw})
}
