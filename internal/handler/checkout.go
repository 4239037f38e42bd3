package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dinetab-pos/api/internal/checkout"
	"github.com/dinetab-pos/api/internal/database"
	"github.com/dinetab-pos/api/internal/enum"
	"github.com/dinetab-pos/api/internal/money"
	"github.com/dinetab-pos/api/internal/service"
	"github.com/dinetab-pos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CheckoutServicer defines the lifecycle methods settlement needs.
// Satisfied by *service.OrderService.
type CheckoutServicer interface {
	SettleOrders(ctx context.Context, areaID int32, orderIDs []uuid.UUID, charged int64) ([]database.Order, error)
}

// CheckoutReadStore defines the read methods the checkout screen needs.
// Satisfied by *database.Queries.
type CheckoutReadStore interface {
	ListOrdersByAreaAndStatus(ctx context.Context, arg database.ListOrdersByAreaAndStatusParams) ([]database.Order, error)
	ListOrderLineDetails(ctx context.Context, orderID uuid.UUID) ([]database.OrderLineDetail, error)
}

// CheckoutHandler serves the settlement screen: the balance preview with
// tips, tendering and even splits, and the settle action itself.
type CheckoutHandler struct {
	svc      CheckoutServicer
	store    CheckoutReadStore
	notifier Notifier
	tax      checkout.TaxStrategy
}

// NewCheckoutHandler creates a new CheckoutHandler. A nil tax strategy falls
// back to the flat default.
func NewCheckoutHandler(svc CheckoutServicer, store CheckoutReadStore, notifier Notifier, tax checkout.TaxStrategy) *CheckoutHandler {
	if tax == nil {
		tax = checkout.FixedTax{Cents: checkout.DefaultTaxCents}
	}
	return &CheckoutHandler{svc: svc, store: store, notifier: notifier, tax: tax}
}

// RegisterRoutes registers checkout endpoints on the given Chi router.
// Expected to be mounted at /service-areas
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}/checkout", h.Preview)
	r.Post("/{id}/settle", h.Settle)
}

// --- Request / Response types ---

type checkoutResponse struct {
	ServiceAreaID     int32           `json:"service_area_id"`
	Orders            []orderResponse `json:"orders"`
	Subtotal          int64           `json:"subtotal"`
	Tax               int64           `json:"tax"`
	Tips              int64           `json:"tips"`
	BalanceDue        int64           `json:"balance_due"`
	BalanceDueDisplay string          `json:"balance_due_display"`
	Tendered          int64           `json:"tendered"`
	Remaining         int64           `json:"remaining"`
	RemainingDisplay  string          `json:"remaining_display"`
	SplitCount        int             `json:"split_count"`
	SplitAmounts      []int64         `json:"split_amounts"`
	SplitDisplay      []string        `json:"split_display"`
}

type settleRequest struct {
	OrderIDs  []uuid.UUID `json:"order_ids"`
	TipsCents int64       `json:"tips_cents"`
}

type settleResponse struct {
	ServiceAreaID  int32           `json:"service_area_id"`
	Orders         []orderResponse `json:"orders"`
	Charged        int64           `json:"charged"`
	ChargedDisplay string          `json:"charged_display"`
}

// --- Handlers ---

// Preview handles GET /service-areas/{id}/checkout. Query params: tips and
// tendered as dollar amounts ("12.50"), split as a positive share count.
func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	areaID, ok := areaIDParam(w, r)
	if !ok {
		return
	}

	tips, ok := amountQueryParam(w, r, "tips")
	if !ok {
		return
	}
	tendered, ok := amountQueryParam(w, r, "tendered")
	if !ok {
		return
	}

	split := 1
	if s := r.URL.Query().Get("split"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid split count"})
			return
		}
		split = n
	}

	orders, details, err := h.confirmedOrders(r.Context(), areaID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if len(orders) == 0 {
		writeServiceError(w, service.ErrNoOrders)
		return
	}

	subtotal, taxLines := sumForTax(orders, details)
	tax := h.tax.Tax(taxLines)
	balanceDue := checkout.BalanceDue(subtotal, tax, tips)
	remaining := checkout.Remaining(balanceDue, tendered)
	splitAmounts := money.SplitEvenly(balanceDue, split)

	resp := checkoutResponse{
		ServiceAreaID:     areaID,
		Orders:            make([]orderResponse, len(orders)),
		Subtotal:          subtotal,
		Tax:               tax,
		Tips:              tips,
		BalanceDue:        balanceDue,
		BalanceDueDisplay: money.FormatCents(balanceDue),
		Tendered:          tendered,
		Remaining:         remaining,
		RemainingDisplay:  money.FormatCents(remaining),
		SplitCount:        split,
		SplitAmounts:      splitAmounts,
		SplitDisplay:      make([]string, len(splitAmounts)),
	}
	for i, o := range orders {
		resp.Orders[i] = dbOrderToResponse(o, details[o.ID])
	}
	for i, amt := range splitAmounts {
		resp.SplitDisplay[i] = money.FormatCents(amt)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Settle handles POST /service-areas/{id}/settle. The charged total is
// recomputed server-side from the confirmed orders plus tips; the client
// never supplies it.
func (h *CheckoutHandler) Settle(w http.ResponseWriter, r *http.Request) {
	areaID, ok := areaIDParam(w, r)
	if !ok {
		return
	}

	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.OrderIDs) == 0 {
		writeServiceError(w, service.ErrNoOrders)
		return
	}

	orders, details, err := h.confirmedOrders(r.Context(), areaID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	byID := make(map[uuid.UUID]database.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	var picked []database.Order
	for _, id := range req.OrderIDs {
		o, ok := byID[id]
		if !ok {
			writeServiceError(w, service.ErrOrderNotFound)
			return
		}
		picked = append(picked, o)
	}

	subtotal, taxLines := sumForTax(picked, details)
	charged := checkout.BalanceDue(subtotal, h.tax.Tax(taxLines), req.TipsCents)

	settled, err := h.svc.SettleOrders(r.Context(), areaID, req.OrderIDs, charged)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := settleResponse{
		ServiceAreaID:  areaID,
		Orders:         make([]orderResponse, len(settled)),
		Charged:        charged,
		ChargedDisplay: money.FormatCents(charged),
	}
	for i, o := range settled {
		resp.Orders[i] = dbOrderToResponse(o, details[o.ID])
	}

	notifyKitchen(h.notifier, ws.EventOrderSettled, resp)
	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

// confirmedOrders loads the area's CONFIRMED orders with their line details
// keyed by order ID.
func (h *CheckoutHandler) confirmedOrders(ctx context.Context, areaID int32) ([]database.Order, map[uuid.UUID][]database.OrderLineDetail, error) {
	orders, err := h.store.ListOrdersByAreaAndStatus(ctx, database.ListOrdersByAreaAndStatusParams{
		ServiceAreaID: areaID,
		Status:        enum.OrderStatusConfirmed,
	})
	if err != nil {
		return nil, nil, err
	}

	details := make(map[uuid.UUID][]database.OrderLineDetail, len(orders))
	for _, o := range orders {
		lines, err := h.store.ListOrderLineDetails(ctx, o.ID)
		if err != nil {
			return nil, nil, err
		}
		details[o.ID] = lines
	}
	return orders, details, nil
}

// sumForTax totals order subtotals and flattens line details into the shape
// the tax strategy consumes.
func sumForTax(orders []database.Order, details map[uuid.UUID][]database.OrderLineDetail) (int64, []checkout.TaxedLine) {
	var subtotal int64
	var taxLines []checkout.TaxedLine
	for _, o := range orders {
		subtotal += o.Subtotal
		for _, l := range details[o.ID] {
			taxLines = append(taxLines, checkout.TaxedLine{
				Quantity: int64(l.Quantity),
				TaxCents: l.TaxCents,
			})
		}
	}
	return subtotal, taxLines
}

// amountQueryParam parses an optional dollar-amount query param into cents.
func amountQueryParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, true
	}
	cents, err := money.ParseAmount(s)
	if err != nil {
		writeServiceError(w, err)
		return 0, false
	}
	return cents, true
}
