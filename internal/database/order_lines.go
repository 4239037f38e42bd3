package database

import (
	"context"

	"github.com/google/uuid"
)

const listOrderLines = `
SELECT order_id, product_id, option, quantity, unit_price, line_no
FROM order_lines
WHERE order_id = $1
ORDER BY line_no
`

// ListOrderLines returns the cart lines in insertion order. The line index
// the UI adjusts quantities by is the position in this slice.
func (q *Queries) ListOrderLines(ctx context.Context, orderID uuid.UUID) ([]OrderLine, error) {
	rows, err := q.db.Query(ctx, listOrderLines, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []OrderLine
	for rows.Next() {
		var l OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Option, &l.Quantity, &l.UnitPrice, &l.LineNo); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

const listOrderLineDetails = `
SELECT ol.order_id, ol.product_id, ol.option, ol.quantity, ol.unit_price, ol.line_no,
       p.description, p.tax
FROM order_lines ol
JOIN products p ON p.id = ol.product_id
WHERE ol.order_id = $1
ORDER BY ol.line_no
`

// ListOrderLineDetails joins cart lines to catalog descriptions for the
// kitchen and checkout screens.
func (q *Queries) ListOrderLineDetails(ctx context.Context, orderID uuid.UUID) ([]OrderLineDetail, error) {
	rows, err := q.db.Query(ctx, listOrderLineDetails, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []OrderLineDetail
	for rows.Next() {
		var d OrderLineDetail
		if err := rows.Scan(&d.OrderID, &d.ProductID, &d.Option, &d.Quantity, &d.UnitPrice, &d.LineNo,
			&d.Description, &d.TaxCents); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// UpsertOrderLineParams adds a product to the cart. UnitPrice is the catalog
// price snapshotted by the caller at add-time.
type UpsertOrderLineParams struct {
	OrderID   uuid.UUID
	ProductID int32
	Option    string
	UnitPrice int64
}

const upsertOrderLine = `
INSERT INTO order_lines (order_id, product_id, option, quantity, unit_price, line_no)
VALUES (
    $1, $2, $3, 1, $4,
    (SELECT COALESCE(MAX(line_no), 0) + 1 FROM order_lines WHERE order_id = $1)
)
ON CONFLICT (order_id, product_id, option)
DO UPDATE SET quantity = order_lines.quantity + 1
RETURNING order_id, product_id, option, quantity, unit_price, line_no
`

// UpsertOrderLine appends a new line with quantity 1, or increments the
// quantity when the same (product, option) pair is already in the cart. The
// conflict branch keeps the original unit_price snapshot and line_no.
func (q *Queries) UpsertOrderLine(ctx context.Context, arg UpsertOrderLineParams) (OrderLine, error) {
	var l OrderLine
	err := q.db.QueryRow(ctx, upsertOrderLine, arg.OrderID, arg.ProductID, arg.Option, arg.UnitPrice).
		Scan(&l.OrderID, &l.ProductID, &l.Option, &l.Quantity, &l.UnitPrice, &l.LineNo)
	return l, err
}

// SetOrderLineQuantityParams identifies a line by its composite key.
type SetOrderLineQuantityParams struct {
	OrderID   uuid.UUID
	ProductID int32
	Option    string
	Quantity  int32
}

const setOrderLineQuantity = `
UPDATE order_lines
SET quantity = $4
WHERE order_id = $1 AND product_id = $2 AND option = $3
`

func (q *Queries) SetOrderLineQuantity(ctx context.Context, arg SetOrderLineQuantityParams) error {
	_, err := q.db.Exec(ctx, setOrderLineQuantity, arg.OrderID, arg.ProductID, arg.Option, arg.Quantity)
	return err
}

// DeleteOrderLineParams identifies a line by its composite key.
type DeleteOrderLineParams struct {
	OrderID   uuid.UUID
	ProductID int32
	Option    string
}

const deleteOrderLine = `
DELETE FROM order_lines
WHERE order_id = $1 AND product_id = $2 AND option = $3
`

func (q *Queries) DeleteOrderLine(ctx context.Context, arg DeleteOrderLineParams) error {
	_, err := q.db.Exec(ctx, deleteOrderLine, arg.OrderID, arg.ProductID, arg.Option)
	return err
}

const sumOrderLines = `
SELECT COALESCE(SUM(unit_price * quantity), 0)
FROM order_lines
WHERE order_id = $1
`

// SumOrderLines recomputes the subtotal from the snapshotted line prices.
func (q *Queries) SumOrderLines(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var sum int64
	err := q.db.QueryRow(ctx, sumOrderLines, orderID).Scan(&sum)
	return sum, err
}
