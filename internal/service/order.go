package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dinetab-pos/api/internal/database"
	"github.com/dinetab-pos/api/internal/enum"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Errors returned by the order lifecycle.
var (
	ErrAreaNotFound      = errors.New("service area not found")
	ErrAreaOccupied      = errors.New("service area already occupied")
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidIndex      = errors.New("line index out of range")
	ErrNoOrders          = errors.New("no orders to settle")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods the order lifecycle needs.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetServiceArea(ctx context.Context, id int32) (database.ServiceArea, error)
	EnsureServiceAreaOccupied(ctx context.Context, id int32) (int64, error)
	ReleaseServiceArea(ctx context.Context, id int32) (int64, error)

	CreateOrder(ctx context.Context, id uuid.UUID, serviceAreaID int32) (database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetOpenOrderByArea(ctx context.Context, serviceAreaID int32) (database.Order, error)
	TransitionOrderStatus(ctx context.Context, arg database.TransitionOrderStatusParams) (database.Order, error)
	SettleOrder(ctx context.Context, arg database.SettleOrderParams) (database.Order, error)
	UpdateOrderSubtotal(ctx context.Context, id uuid.UUID, subtotal int64) error

	GetProduct(ctx context.Context, id int32) (database.Product, error)
	UpsertOrderLine(ctx context.Context, arg database.UpsertOrderLineParams) (database.OrderLine, error)
	ListOrderLines(ctx context.Context, orderID uuid.UUID) ([]database.OrderLine, error)
	SetOrderLineQuantity(ctx context.Context, arg database.SetOrderLineQuantityParams) error
	DeleteOrderLine(ctx context.Context, arg database.DeleteOrderLineParams) error
	SumOrderLines(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// OrderService drives the order lifecycle: cart building on an OPEN order,
// placement into the kitchen queue, confirmation, and settlement. Every
// mutation runs in a single transaction so the subtotal, the status machine
// and the service-area occupancy can never drift apart.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, newStore: newStore}
}

// GetOrCreateOpenOrder returns the OPEN order for the service area, creating
// an empty one when none exists. At most one OPEN order exists per area.
func (s *OrderService) GetOrCreateOpenOrder(ctx context.Context, areaID int32) (database.Order, error) {
	var order database.Order
	err := s.withTx(ctx, func(store OrderStore) error {
		if _, err := store.GetServiceArea(ctx, areaID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrAreaNotFound
			}
			return fmt.Errorf("get area: %w", err)
		}

		existing, err := store.GetOpenOrderByArea(ctx, areaID)
		if err == nil {
			order = existing
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("get open order: %w", err)
		}

		created, err := store.CreateOrder(ctx, uuid.New(), areaID)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		order = created
		return nil
	})
	return order, err
}

// AddLine adds one unit of a product (with an optional modifier) to an OPEN
// order. The catalog unit price is snapshotted onto the line at add-time, so
// later catalog changes do not move already-carted items. A line with the
// same (product, option) pair is incremented instead of duplicated.
func (s *OrderService) AddLine(ctx context.Context, orderID uuid.UUID, productID int32, option string) (database.Order, error) {
	var order database.Order
	err := s.withTx(ctx, func(store OrderStore) error {
		current, err := s.getOpenOrder(ctx, store, orderID)
		if err != nil {
			return err
		}

		product, err := store.GetProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrProductNotFound
			}
			return fmt.Errorf("get product: %w", err)
		}

		if _, err := store.UpsertOrderLine(ctx, database.UpsertOrderLineParams{
			OrderID:   orderID,
			ProductID: productID,
			Option:    option,
			UnitPrice: product.UnitPrice,
		}); err != nil {
			return fmt.Errorf("upsert line: %w", err)
		}

		order = current
		return s.refreshSubtotal(ctx, store, &order)
	})
	return order, err
}

// AdjustQuantity changes a line's quantity by delta, addressing the line by
// its position in the cart. A quantity that drops to zero or below removes
// the line entirely.
func (s *OrderService) AdjustQuantity(ctx context.Context, orderID uuid.UUID, lineIndex int, delta int32) (database.Order, error) {
	var order database.Order
	err := s.withTx(ctx, func(store OrderStore) error {
		current, err := s.getOpenOrder(ctx, store, orderID)
		if err != nil {
			return err
		}

		lines, err := store.ListOrderLines(ctx, orderID)
		if err != nil {
			return fmt.Errorf("list lines: %w", err)
		}
		if lineIndex < 0 || lineIndex >= len(lines) {
			return ErrInvalidIndex
		}

		line := lines[lineIndex]
		newQty := line.Quantity + delta
		if newQty <= 0 {
			err = store.DeleteOrderLine(ctx, database.DeleteOrderLineParams{
				OrderID:   orderID,
				ProductID: line.ProductID,
				Option:    line.Option,
			})
		} else {
			err = store.SetOrderLineQuantity(ctx, database.SetOrderLineQuantityParams{
				OrderID:   orderID,
				ProductID: line.ProductID,
				Option:    line.Option,
				Quantity:  newQty,
			})
		}
		if err != nil {
			return fmt.Errorf("adjust line: %w", err)
		}

		order = current
		return s.refreshSubtotal(ctx, store, &order)
	})
	return order, err
}

// PlaceOrder transitions OPEN to PLACED, exposing the order to the kitchen
// queue, and marks the service area occupied. Placing an empty cart fails.
func (s *OrderService) PlaceOrder(ctx context.Context, orderID uuid.UUID) (database.Order, error) {
	var order database.Order
	err := s.withTx(ctx, func(store OrderStore) error {
		current, err := store.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("get order: %w", err)
		}
		if current.Status != enum.OrderStatusOpen {
			return ErrInvalidTransition
		}

		lines, err := store.ListOrderLines(ctx, orderID)
		if err != nil {
			return fmt.Errorf("list lines: %w", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		placed, err := store.TransitionOrderStatus(ctx, database.TransitionOrderStatusParams{
			ID:         orderID,
			FromStatus: enum.OrderStatusOpen,
			ToStatus:   enum.OrderStatusPlaced,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInvalidTransition
			}
			return fmt.Errorf("place order: %w", err)
		}

		// The area is normally occupied at seating time; placing the
		// order guarantees it either way without disturbing the
		// original occupancy timestamp.
		if _, err := store.EnsureServiceAreaOccupied(ctx, placed.ServiceAreaID); err != nil {
			return fmt.Errorf("occupy area: %w", err)
		}

		order = placed
		return nil
	})
	return order, err
}

// ConfirmOrder transitions PLACED to CONFIRMED (kitchen acknowledged).
func (s *OrderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) (database.Order, error) {
	var order database.Order
	err := s.withTx(ctx, func(store OrderStore) error {
		if _, err := store.GetOrder(ctx, orderID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("get order: %w", err)
		}

		confirmed, err := store.TransitionOrderStatus(ctx, database.TransitionOrderStatusParams{
			ID:         orderID,
			FromStatus: enum.OrderStatusPlaced,
			ToStatus:   enum.OrderStatusConfirmed,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInvalidTransition
			}
			return fmt.Errorf("confirm order: %w", err)
		}

		order = confirmed
		return nil
	})
	return order, err
}

// SettleOrders closes out a service area: every listed order must be
// CONFIRMED and belong to the area. All of them are stamped SETTLED with the
// charged total and the area is released in the same transaction, so partial
// settlement can never leave the area stuck occupied.
func (s *OrderService) SettleOrders(ctx context.Context, areaID int32, orderIDs []uuid.UUID, charged int64) ([]database.Order, error) {
	if len(orderIDs) == 0 {
		return nil, ErrNoOrders
	}

	var settled []database.Order
	err := s.withTx(ctx, func(store OrderStore) error {
		for _, id := range orderIDs {
			current, err := store.GetOrder(ctx, id)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
				}
				return fmt.Errorf("get order %s: %w", id, err)
			}
			if current.ServiceAreaID != areaID {
				return fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
			}

			order, err := store.SettleOrder(ctx, database.SettleOrderParams{
				ID:      id,
				Charged: charged,
			})
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("order %s: %w", id, ErrInvalidTransition)
				}
				return fmt.Errorf("settle order %s: %w", id, err)
			}
			settled = append(settled, order)
		}

		if _, err := store.ReleaseServiceArea(ctx, areaID); err != nil {
			return fmt.Errorf("release area: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// --- Helpers ---

// withTx runs fn against a tx-bound store and commits on success.
func (s *OrderService) withTx(ctx context.Context, fn func(store OrderStore) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(s.newStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// getOpenOrder loads the order and verifies the cart is still mutable.
func (s *OrderService) getOpenOrder(ctx context.Context, store OrderStore, orderID uuid.UUID) (database.Order, error) {
	order, err := store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("get order: %w", err)
	}
	if order.Status != enum.OrderStatusOpen {
		return database.Order{}, ErrInvalidTransition
	}
	return order, nil
}

// refreshSubtotal recomputes the subtotal from the line snapshots and writes
// it back, keeping order.Subtotal equal to the sum of unit_price*quantity.
func (s *OrderService) refreshSubtotal(ctx context.Context, store OrderStore, order *database.Order) error {
	sum, err := store.SumOrderLines(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("sum lines: %w", err)
	}
	if err := store.UpdateOrderSubtotal(ctx, order.ID, sum); err != nil {
		return fmt.Errorf("update subtotal: %w", err)
	}
	order.Subtotal = sum
	return nil
}
