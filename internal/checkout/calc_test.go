package checkout

import "testing"

func TestBalanceDue(t *testing.T) {
	// Two orders on one tab: 2197 + 799 subtotal, flat tax, no tips.
	if got := BalanceDue(2996, DefaultTaxCents, 0); got != 3199 {
		t.Errorf("BalanceDue = %d, want 3199", got)
	}
	if got := BalanceDue(2996, DefaultTaxCents, 500); got != 3699 {
		t.Errorf("BalanceDue with tips = %d, want 3699", got)
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(3199, 2000); got != 1199 {
		t.Errorf("Remaining = %d, want 1199", got)
	}
	// Overtendering yields negative remaining: change due.
	if got := Remaining(3199, 4000); got != -801 {
		t.Errorf("Remaining = %d, want -801", got)
	}
}

func TestFixedTax(t *testing.T) {
	strategy := FixedTax{Cents: DefaultTaxCents}
	lines := []TaxedLine{{Quantity: 3, TaxCents: 60}, {Quantity: 1, TaxCents: 80}}
	if got := strategy.Tax(lines); got != 203 {
		t.Errorf("FixedTax = %d, want 203", got)
	}
	if got := strategy.Tax(nil); got != 203 {
		t.Errorf("FixedTax on empty cart = %d, want 203", got)
	}
}

func TestCatalogTax(t *testing.T) {
	strategy := CatalogTax{}
	lines := []TaxedLine{{Quantity: 3, TaxCents: 60}, {Quantity: 1, TaxCents: 80}}
	if got := strategy.Tax(lines); got != 260 {
		t.Errorf("CatalogTax = %d, want 260", got)
	}
	if got := strategy.Tax(nil); got != 0 {
		t.Errorf("CatalogTax on empty cart = %d, want 0", got)
	}
}
