package domain

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// Product is the catalog fact a cart line is created from.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unit_price"`
	ImageRef  string `json:"image_ref"`
	Category  string `json:"category"`
}

// CartLine pairs a product with a quantity. A cart holds at most one
// line per product; a line whose quantity drops to zero is removed.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unit_price"`
	Quantity  int32  `json:"quantity"`
	ImageRef  string `json:"image_ref"`
	Category  string `json:"category"`
}

// Cart keeps lines in insertion order; order matters for display only.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c Cart) Count() int32 {
	var n int32
	for _, ln := range c.Lines {
		n += ln.Quantity
	}
	return n
}

func (c Cart) Total() Money {
	var total Money
	for _, ln := range c.Lines {
		total.Currency = ln.UnitPrice.Currency
		total.Amount += ln.UnitPrice.Amount * int64(ln.Quantity)
	}
	return total
}
