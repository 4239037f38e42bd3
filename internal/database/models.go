package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ServiceArea is a table or seating area. Status is OCCUPIED exactly when
// OccupiedAt is set.
type ServiceArea struct {
	ID          int32
	Description string
	Status      string
	OccupiedAt  pgtype.Timestamptz
}

// Order is the order aggregate head row. Subtotal and Charged are integer
// cents; Charged is zero until settlement.
type Order struct {
	ID            uuid.UUID
	ServiceAreaID int32
	Status        string
	Subtotal      int64
	Charged       int64
	CreatedAt     time.Time
}

// OrderLine is one cart line. The composite key is (order_id, product_id,
// option); LineNo preserves insertion order for display and index-based
// quantity adjustments. UnitPrice is the catalog price snapshotted at
// add-time.
type OrderLine struct {
	OrderID   uuid.UUID
	ProductID int32
	Option    string
	Quantity  int32
	UnitPrice int64
	LineNo    int32
}

// OrderLineDetail is an order line joined to its catalog description.
type OrderLineDetail struct {
	OrderLine
	Description string
	TaxCents    int64
}

// Product is read-only catalog reference data. UnitPrice and Tax are integer
// cents; Tax is the per-unit tax column carried by the source schema.
type Product struct {
	ID          int32
	Description string
	GroupID     int32
	UnitPrice   int64
	Tax         int64
}

// ProductGroup is a menu tab ("Burgers and Sandwiches", "Sides", ...).
type ProductGroup struct {
	ID          int32
	Description string
}

// ProductOption is a selectable modifier label ("Sweet", "No tomato").
type ProductOption struct {
	ID          int32
	Description string
}
