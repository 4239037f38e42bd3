package enum

// Order lifecycle is strictly forward: OPEN -> PLACED -> CONFIRMED -> SETTLED.
// SETTLED is terminal; settled orders are kept as history.
const (
	OrderStatusOpen      = "OPEN"
	OrderStatusPlaced    = "PLACED"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusSettled   = "SETTLED"
)

const (
	AreaStatusAvailable = "AVAILABLE"
	AreaStatusOccupied  = "OCCUPIED"
)

// Payment method buttons on the checkout screen. Recorded for display only;
// there is no gateway integration.
const (
	PaymentMethodCash   = "CASH"
	PaymentMethodCredit = "CREDIT"
)
