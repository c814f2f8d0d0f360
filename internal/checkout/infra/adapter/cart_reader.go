package adapter

import (
	cartapp "github.com/ecocart/storefront/internal/cart/app"
	checkoutapp "github.com/ecocart/storefront/internal/checkout/app"
	checkoutdomain "github.com/ecocart/storefront/internal/checkout/domain"
)

// CartStoreReader exposes the cart store to the checkout gate.
type CartStoreReader struct {
	store *cartapp.Store
}

func NewCartStoreReader(store *cartapp.Store) *CartStoreReader {
	return &CartStoreReader{store: store}
}

func (r *CartStoreReader) Lines() []checkoutapp.Line {
	src := r.store.Lines()
	lines := make([]checkoutapp.Line, 0, len(src))
	for _, ln := range src {
		lines = append(lines, checkoutapp.Line{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			UnitPrice: checkoutdomain.Money{
				Currency: ln.UnitPrice.Currency,
				Amount:   ln.UnitPrice.Amount,
			},
			Quantity: ln.Quantity,
		})
	}
	return lines
}
