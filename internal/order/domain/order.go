package domain

import "time"

// Every successful checkout records exactly one confirmed order; the engine
// never mutates or deletes one afterwards.
const StatusConfirmed = "confirmed"

type Order struct {
	ID          string
	UserID      string
	Status      string
	Currency    string
	TotalAmount int64
	Address     ShippingAddress
	Lines       []OrderLine
	CreatedAt   time.Time
}

// OrderLine is a frozen copy of a cart line at submission time.
type OrderLine struct {
	ProductID       string
	Name            string
	UnitAmount      int64
	Quantity        int32
	LineTotalAmount int64
}

type ShippingAddress struct {
	DisplayText string
	Lat         *float64
	Lon         *float64
}

// SubmitRequest carries the gate-verified inputs of one checkout attempt.
type SubmitRequest struct {
	UserID   string
	Email    string
	Currency string
	Address  ShippingAddress
	Lines    []SubmitLine
}

type SubmitLine struct {
	ProductID  string
	Name       string
	UnitAmount int64
	Quantity   int32
}

type SubmitResponse struct {
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}
