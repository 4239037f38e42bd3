package database

import (
	"context"

	"github.com/google/uuid"
)

const createOrder = `
INSERT INTO orders (id, service_area_id, status)
VALUES ($1, $2, 'OPEN')
RETURNING id, service_area_id, status, subtotal, charged, created_at
`

func (q *Queries) CreateOrder(ctx context.Context, id uuid.UUID, serviceAreaID int32) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, createOrder, id, serviceAreaID).
		Scan(&o.ID, &o.ServiceAreaID, &o.Status, &o.Subtotal, &o.Charged, &o.CreatedAt)
	return o, err
}

const getOrder = `
SELECT id, service_area_id, status, subtotal, charged, created_at
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, getOrder, id).
		Scan(&o.ID, &o.ServiceAreaID, &o.Status, &o.Subtotal, &o.Charged, &o.CreatedAt)
	return o, err
}

const getOpenOrderByArea = `
SELECT id, service_area_id, status, subtotal, charged, created_at
FROM orders
WHERE service_area_id = $1 AND status = 'OPEN'
ORDER BY created_at
LIMIT 1
`

// GetOpenOrderByArea returns the single open order for a service area.
// pgx.ErrNoRows means a new order should be created.
func (q *Queries) GetOpenOrderByArea(ctx context.Context, serviceAreaID int32) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, getOpenOrderByArea, serviceAreaID).
		Scan(&o.ID, &o.ServiceAreaID, &o.Status, &o.Subtotal, &o.Charged, &o.CreatedAt)
	return o, err
}

// TransitionOrderStatusParams is a compare-and-set on order status: the
// update only applies when the order is still in FromStatus.
type TransitionOrderStatusParams struct {
	ID         uuid.UUID
	FromStatus string
	ToStatus   string
}

const transitionOrderStatus = `
UPDATE orders
SET status = $3
WHERE id = $1 AND status = $2
RETURNING id, service_area_id, status, subtotal, charged, created_at
`

// TransitionOrderStatus advances the order state machine. pgx.ErrNoRows
// means the order is missing or no longer in FromStatus; the caller
// distinguishes the two with a prior GetOrder in the same transaction.
func (q *Queries) TransitionOrderStatus(ctx context.Context, arg TransitionOrderStatusParams) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, transitionOrderStatus, arg.ID, arg.FromStatus, arg.ToStatus).
		Scan(&o.ID, &o.ServiceAreaID, &o.Status, &o.Subtotal, &o.Charged, &o.CreatedAt)
	return o, err
}

// SettleOrderParams stamps the total charged while settling.
type SettleOrderParams struct {
	ID      uuid.UUID
	Charged int64
}

const settleOrder = `
UPDATE orders
SET status = 'SETTLED', charged = $2
WHERE id = $1 AND status = 'CONFIRMED'
RETURNING id, service_area_id, status, subtotal, charged, created_at
`

// SettleOrder moves a CONFIRMED order to SETTLED with the charged amount.
// pgx.ErrNoRows means the order was not CONFIRMED (or does not exist).
func (q *Queries) SettleOrder(ctx context.Context, arg SettleOrderParams) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, settleOrder, arg.ID, arg.Charged).
		Scan(&o.ID, &o.ServiceAreaID, &o.Status, &o.Subtotal, &o.Charged, &o.CreatedAt)
	return o, err
}

const updateOrderSubtotal = `
UPDATE orders
SET subtotal = $2
WHERE id = $1
`

func (q *Queries) UpdateOrderSubtotal(ctx context.Context, id uuid.UUID, subtotal int64) error {
	_, err := q.db.Exec(ctx, updateOrderSubtotal, id, subtotal)
	return err
}

const listOrdersByStatus = `
SELECT id, service_area_id, status, subtotal, charged, created_at
FROM orders
WHERE status = $1
ORDER BY created_at
`

// ListOrdersByStatus returns orders in a given status, oldest first. The
// kitchen queue depends on this FIFO ordering.
func (q *Queries) ListOrdersByStatus(ctx context.Context, status string) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersByStatus, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListOrdersByAreaAndStatusParams filters orders for one service area.
type ListOrdersByAreaAndStatusParams struct {
	ServiceAreaID int32
	Status        string
}

const listOrdersByAreaAndStatus = `
SELECT id, service_area_id, status, subtotal, charged, created_at
FROM orders
WHERE service_area_id = $1 AND status = $2
ORDER BY created_at
`

func (q *Queries) ListOrdersByAreaAndStatus(ctx context.Context, arg ListOrdersByAreaAndStatusParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersByAreaAndStatus, arg.ServiceAreaID, arg.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Order, error) {
	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ServiceAreaID, &o.Status, &o.Subtotal, &o.Charged, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
