package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dinetab-pos/api/internal/database"
	"github.com/dinetab-pos/api/internal/enum"
	"github.com/dinetab-pos/api/internal/handler"
	"github.com/dinetab-pos/api/internal/service"
	"github.com/dinetab-pos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// mockKitchenServicer implements handler.KitchenServicer.
type mockKitchenServicer struct {
	confirmOrderFn func(ctx context.Context, orderID uuid.UUID) (database.Order, error)
}

func (m *mockKitchenServicer) ConfirmOrder(ctx context.Context, orderID uuid.UUID) (database.Order, error) {
	return m.confirmOrderFn(ctx, orderID)
}

// mockKitchenReadStore implements handler.KitchenReadStore.
type mockKitchenReadStore struct {
	placed []database.Order
	lines  map[uuid.UUID][]database.OrderLineDetail
}

func (m *mockKitchenReadStore) ListOrdersByStatus(_ context.Context, status string) ([]database.Order, error) {
	if status != enum.OrderStatusPlaced {
		return nil, nil
	}
	return m.placed, nil
}

func (m *mockKitchenReadStore) ListOrderLineDetails(_ context.Context, orderID uuid.UUID) ([]database.OrderLineDetail, error) {
	return m.lines[orderID], nil
}

func setupKitchenRouter(svc *mockKitchenServicer, store *mockKitchenReadStore, notifier *mockNotifier) *chi.Mux {
	h := handler.NewKitchenHandler(svc, store, notifier)
	r := chi.NewRouter()
	r.Route("/kitchen", h.RegisterRoutes)
	return r
}

func TestKitchenQueue_FIFO(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first, second := uuid.New(), uuid.New()
	store := &mockKitchenReadStore{
		// ListOrdersByStatus returns oldest first; the handler must keep
		// that order.
		placed: []database.Order{
			{ID: first, ServiceAreaID: 2, Status: enum.OrderStatusPlaced, Subtotal: 599, CreatedAt: base},
			{ID: second, ServiceAreaID: 5, Status: enum.OrderStatusPlaced, Subtotal: 1299, CreatedAt: base.Add(time.Minute)},
		},
		lines: map[uuid.UUID][]database.OrderLineDetail{
			first: {{OrderLine: database.OrderLine{OrderID: first, ProductID: 1, Quantity: 1, UnitPrice: 599, LineNo: 1}, Description: "Classic Cheeseburger", TaxCents: 60}},
		},
	}
	r := setupKitchenRouter(&mockKitchenServicer{}, store, &mockNotifier{})

	req := httptest.NewRequest("GET", "/kitchen/orders", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	orders := resp["orders"].([]interface{})
	if len(orders) != 2 {
		t.Fatalf("orders: got %d, want 2", len(orders))
	}
	if orders[0].(map[string]interface{})["id"] != first.String() {
		t.Errorf("first in queue: got %v, want %s", orders[0].(map[string]interface{})["id"], first)
	}
	lines := orders[0].(map[string]interface{})["lines"].([]interface{})
	if len(lines) != 1 {
		t.Fatalf("first order lines: got %d, want 1", len(lines))
	}
}

func TestKitchenConfirm_Broadcasts(t *testing.T) {
	orderID := uuid.New()
	svc := &mockKitchenServicer{
		confirmOrderFn: func(ctx context.Context, id uuid.UUID) (database.Order, error) {
			return database.Order{ID: id, ServiceAreaID: 2, Status: enum.OrderStatusConfirmed}, nil
		},
	}
	notifier := &mockNotifier{}
	r := setupKitchenRouter(svc, &mockKitchenReadStore{lines: map[uuid.UUID][]database.OrderLineDetail{}}, notifier)

	req := httptest.NewRequest("POST", "/kitchen/orders/"+orderID.String()+"/confirm", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != enum.OrderStatusConfirmed {
		t.Errorf("status: got %v, want CONFIRMED", resp["status"])
	}

	types := notifier.eventTypes()
	if len(types) != 1 || types[0] != ws.EventOrderConfirmed {
		t.Errorf("broadcast events: got %v, want [ORDER_CONFIRMED]", types)
	}
}

func TestKitchenConfirm_InvalidTransition(t *testing.T) {
	svc := &mockKitchenServicer{
		confirmOrderFn: func(ctx context.Context, id uuid.UUID) (database.Order, error) {
			return database.Order{}, service.ErrInvalidTransition
		},
	}
	r := setupKitchenRouter(svc, &mockKitchenReadStore{}, &mockNotifier{})

	req := httptest.NewRequest("POST", "/kitchen/orders/"+uuid.New().String()+"/confirm", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rr.Code)
	}
}
