package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ecocart/storefront/internal/order/domain"
	stockapp "github.com/ecocart/storefront/internal/stock/app"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrMissingIdentity  = errors.New("identity is required")
	ErrMissingAddress   = errors.New("shipping address is required")
	ErrOrderPersistence = errors.New("order could not be persisted")
)

// Submitter turns a gate-verified checkout attempt into a durable order.
// Submission is not idempotent on its own; the checkout gate's in-flight
// latch is the duplicate guard.
type Submitter struct {
	repo  OrderRepo
	stock StockSettler
	cart  CartClearer
	log   *slog.Logger
}

func NewSubmitter(repo OrderRepo, stock StockSettler, cart CartClearer, log *slog.Logger) *Submitter {
	return &Submitter{repo: repo, stock: stock, cart: cart, log: log}
}

// Submit re-checks the gate's guarantees, inserts one confirmed order, then
// settles stock and clears the cart. An insert failure leaves the cart
// untouched so the user can retry without data loss.
func (s *Submitter) Submit(ctx context.Context, req domain.SubmitRequest) (domain.SubmitResponse, error) {
	if len(req.Lines) == 0 {
		return domain.SubmitResponse{}, ErrEmptyCart
	}
	if strings.TrimSpace(req.UserID) == "" {
		return domain.SubmitResponse{}, ErrMissingIdentity
	}
	if strings.TrimSpace(req.Address.DisplayText) == "" {
		return domain.SubmitResponse{}, ErrMissingAddress
	}

	lines := make([]domain.OrderLine, 0, len(req.Lines))
	var total int64
	for i, ln := range req.Lines {
		if ln.Quantity <= 0 {
			return domain.SubmitResponse{}, fmt.Errorf("line %d: quantity must be positive, got %d", i, ln.Quantity)
		}
		if ln.UnitAmount < 0 {
			return domain.SubmitResponse{}, fmt.Errorf("line %d: unit amount cannot be negative, got %d", i, ln.UnitAmount)
		}

		lineTotal := ln.UnitAmount * int64(ln.Quantity)
		lines = append(lines, domain.OrderLine{
			ProductID:       ln.ProductID,
			Name:            ln.Name,
			UnitAmount:      ln.UnitAmount,
			Quantity:        ln.Quantity,
			LineTotalAmount: lineTotal,
		})
		total += lineTotal
	}

	order := domain.Order{
		UserID:      req.UserID,
		Status:      domain.StatusConfirmed,
		Currency:    req.Currency,
		TotalAmount: total,
		Address:     req.Address,
		Lines:       lines,
	}

	created, err := s.repo.InsertOrderTx(ctx, order)
	if err != nil {
		return domain.SubmitResponse{}, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	// The order stands confirmed from here on; inventory settlement and the
	// cart wipe happen after the point of no return. The cleared lines first
	// return the stock they held at cart time, then the order takes its
	// quantities, so the reservation becomes the sale exactly once.
	finalize := make([]stockapp.Line, 0, len(created.Lines))
	for _, ln := range created.Lines {
		s.stock.ReleaseOnRemoval(ctx, ln.ProductID, ln.Quantity)
		finalize = append(finalize, stockapp.Line{ProductID: ln.ProductID, Quantity: ln.Quantity})
	}
	s.stock.FinalizeOnOrder(ctx, finalize)

	s.cart.Clear()

	s.log.Info("order confirmed",
		slog.String("order_id", created.ID),
		slog.String("user_id", created.UserID),
		slog.Int64("total_amount", created.TotalAmount))

	return domain.SubmitResponse{
		OrderID:     created.ID,
		Status:      created.Status,
		TotalAmount: created.TotalAmount,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// History lists the user's past orders, newest first.
func (s *Submitter) History(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
