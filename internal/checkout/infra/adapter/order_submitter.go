package adapter

import (
	"context"

	checkoutapp "github.com/ecocart/storefront/internal/checkout/app"
	orderapp "github.com/ecocart/storefront/internal/order/app"
	orderdomain "github.com/ecocart/storefront/internal/order/domain"
)

// OrderServiceSubmitter adapts the order submitter to the gate's port.
type OrderServiceSubmitter struct {
	svc *orderapp.Submitter
}

func NewOrderServiceSubmitter(svc *orderapp.Submitter) *OrderServiceSubmitter {
	return &OrderServiceSubmitter{svc: svc}
}

func (s *OrderServiceSubmitter) Submit(ctx context.Context, order checkoutapp.SubmitOrder) (string, error) {
	req := orderdomain.SubmitRequest{
		UserID: order.Identity.UserID,
		Email:  order.Identity.Email,
		Address: orderdomain.ShippingAddress{
			DisplayText: order.Address.DisplayText,
			Lat:         order.Address.Lat,
			Lon:         order.Address.Lon,
		},
	}
	for _, ln := range order.Lines {
		req.Currency = ln.UnitPrice.Currency
		req.Lines = append(req.Lines, orderdomain.SubmitLine{
			ProductID:  ln.ProductID,
			Name:       ln.Name,
			UnitAmount: ln.UnitPrice.Amount,
			Quantity:   ln.Quantity,
		})
	}

	resp, err := s.svc.Submit(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.OrderID, nil
}
