package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ecocart/storefront/internal/checkout/domain"
)

// CartReader exposes the session cart to the gate.
type CartReader interface {
	Lines() []Line
}

type Line struct {
	ProductID string
	Name      string
	UnitPrice domain.Money
	Quantity  int32
}

// SessionReader asks the identity collaborator for the current session.
type SessionReader interface {
	GetSession(ctx context.Context) (Identity, bool, error)
}

type Identity struct {
	UserID string
	Email  string
}

// AddressReader fetches the identity's default shipping address.
type AddressReader interface {
	DefaultFor(ctx context.Context, userID string) (Address, bool, error)
}

type Address struct {
	DisplayText string
	Lat         *float64
	Lon         *float64
}

// OrderSubmitter records the order; clearing the cart and settling stock
// happen behind it.
type OrderSubmitter interface {
	Submit(ctx context.Context, order SubmitOrder) (orderID string, err error)
}

type SubmitOrder struct {
	Identity Identity
	Address  Address
	Lines    []Line
}

var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAddressRequired        = errors.New("shipping address required")
	ErrSubmitInFlight         = errors.New("a submission is already in flight")
	ErrNoAttempt              = errors.New("no checkout attempt awaiting confirmation")
)

// RedirectError tells the caller which flow resolves a failed precondition
// and where to resume checkout afterwards. Gate failures are guidance, not
// hard errors.
type RedirectError struct {
	Reason   error
	Location string
	ReturnTo string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%v: continue at %s", e.Reason, e.Location)
}

func (e *RedirectError) Unwrap() error { return e.Reason }

const (
	signInPath  = "/login"
	addressPath = "/address"
	cartPath    = "/cart"
)

// Gate sequences the checkout preconditions: non-empty cart, authenticated
// identity, known shipping address, explicit confirmation. It is the single
// authority for "is checkout allowed right now"; pages never re-derive the
// answer themselves.
type Gate struct {
	cart      CartReader
	sessions  SessionReader
	addresses AddressReader
	submitter OrderSubmitter
	log       *slog.Logger

	mu         sync.Mutex
	state      domain.State
	submitting bool

	// captured for the current attempt between Begin and Confirm
	identity Identity
	address  Address
}

func NewGate(cart CartReader, sessions SessionReader, addresses AddressReader, submitter OrderSubmitter, log *slog.Logger) *Gate {
	return &Gate{
		cart:      cart,
		sessions:  sessions,
		addresses: addresses,
		submitter: submitter,
		log:       log,
		state:     domain.StateIdle,
	}
}

func (g *Gate) State() domain.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Begin runs the precondition checks in order and lands in Confirming with a
// summary for the user. Any failed check resets to Idle; identity and
// address failures carry a redirect with a return target so the user resumes
// checkout after resolving them. Collaborator read failures gate as
// "absent": reads fail open toward re-prompting the user.
func (g *Gate) Begin(ctx context.Context) (domain.Summary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.submitting {
		return domain.Summary{}, ErrSubmitInFlight
	}
	g.state = domain.StateIdle

	lines := g.cart.Lines()
	if len(lines) == 0 {
		return domain.Summary{}, ErrEmptyCart
	}
	g.state = domain.StateCartChecked

	id, ok, err := g.sessions.GetSession(ctx)
	if err != nil {
		g.log.Warn("session read failed, treating as signed out", slog.Any("err", err))
		ok = false
	}
	if !ok {
		g.state = domain.StateIdle
		return domain.Summary{}, &RedirectError{
			Reason:   ErrAuthenticationRequired,
			Location: signInPath,
			ReturnTo: cartPath,
		}
	}
	g.state = domain.StateIdentityChecked

	addr, ok, err := g.addresses.DefaultFor(ctx, id.UserID)
	if err != nil {
		g.log.Warn("address read failed, treating as absent", slog.Any("err", err))
		ok = false
	}
	if !ok {
		g.state = domain.StateIdle
		return domain.Summary{}, &RedirectError{
			Reason:   ErrAddressRequired,
			Location: addressPath,
			ReturnTo: cartPath,
		}
	}
	g.state = domain.StateAddressChecked

	g.identity = id
	g.address = addr
	g.state = domain.StateConfirming

	return summarize(lines, id, addr), nil
}

// Confirm submits the attempt. The submitting latch rejects duplicate
// confirms while one is in flight, so rapid double-clicks produce exactly
// one order. A submitter failure keeps the gate in Confirming for retry.
func (g *Gate) Confirm(ctx context.Context) (string, error) {
	g.mu.Lock()
	if g.submitting {
		g.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	if g.state != domain.StateConfirming {
		g.mu.Unlock()
		return "", ErrNoAttempt
	}

	g.submitting = true
	id := g.identity
	addr := g.address
	lines := g.cart.Lines() // frozen copy at submission time
	g.mu.Unlock()

	orderID, err := g.submitter.Submit(ctx, SubmitOrder{Identity: id, Address: addr, Lines: lines})

	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitting = false

	if err != nil {
		return "", err
	}

	// The in-flight submit owns the outcome even if Cancel raced it: the
	// order is durably recorded.
	g.state = domain.StateSubmitted
	return orderID, nil
}

// Cancel returns to Idle from any state with no side effects.
func (g *Gate) Cancel() {
	g.mu.Lock()
	g.state = domain.StateIdle
	g.identity = Identity{}
	g.address = Address{}
	g.mu.Unlock()
}

func summarize(lines []Line, id Identity, addr Address) domain.Summary {
	out := domain.Summary{
		Email:       id.Email,
		AddressText: addr.DisplayText,
	}
	for _, ln := range lines {
		lineTotal := domain.Money{
			Currency: ln.UnitPrice.Currency,
			Amount:   ln.UnitPrice.Amount * int64(ln.Quantity),
		}
		out.Lines = append(out.Lines, domain.SummaryLine{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice,
			LineTotal: lineTotal,
		})
		out.Total.Currency = lineTotal.Currency
		out.Total.Amount += lineTotal.Amount
	}
	return out
}
