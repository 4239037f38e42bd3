package checkout

// DefaultTaxCents is the flat tax applied at checkout ($2.03). The catalog
// carries per-product tax values, but the checkout screens have always
// charged this constant; CatalogTax exists for when that changes.
const DefaultTaxCents int64 = 203

// TaxedLine is the slice of an order line the tax strategies need.
type TaxedLine struct {
	Quantity int64
	// TaxCents is the per-unit tax from the product catalog.
	TaxCents int64
}

// TaxStrategy computes the tax for a set of order lines.
type TaxStrategy interface {
	Tax(lines []TaxedLine) int64
}

// FixedTax charges a flat amount per checkout regardless of the cart.
type FixedTax struct {
	Cents int64
}

func (f FixedTax) Tax([]TaxedLine) int64 { return f.Cents }

// CatalogTax sums the catalog per-unit tax across all lines.
type CatalogTax struct{}

func (CatalogTax) Tax(lines []TaxedLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.TaxCents * l.Quantity
	}
	return total
}
