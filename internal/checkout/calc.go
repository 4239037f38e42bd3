// Package checkout implements the settlement calculator: balance math, the
// per-interaction checkout session with its numeric-pad buffer, and the tax
// strategy. Everything here is pure: no I/O, no clocks, no storage.
package checkout

// BalanceDue is the amount the party owes: subtotal + tax + tips.
func BalanceDue(subtotal, tax, tips int64) int64 {
	return subtotal + tax + tips
}

// Remaining is the balance still owed after tendering. A negative result is
// change due to the customer.
func Remaining(balanceDue, tendered int64) int64 {
	return balanceDue - tendered
}
