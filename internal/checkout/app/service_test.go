package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecocart/storefront/internal/checkout/domain"
)

type fakeCart struct {
	lines []Line
}

func (f *fakeCart) Lines() []Line { return f.lines }

type fakeSessions struct {
	identity Identity
	signedIn bool
	err      error
	calls    int
}

func (f *fakeSessions) GetSession(ctx context.Context) (Identity, bool, error) {
	f.calls++
	return f.identity, f.signedIn, f.err
}

type fakeAddresses struct {
	address Address
	found   bool
	err     error
	calls   int
}

func (f *fakeAddresses) DefaultFor(ctx context.Context, userID string) (Address, bool, error) {
	f.calls++
	return f.address, f.found, f.err
}

type fakeSubmitter struct {
	orderID string
	err     error
	calls   atomic.Int32
	block   chan struct{} // when set, Submit waits on it
	got     SubmitOrder
}

func (f *fakeSubmitter) Submit(ctx context.Context, order SubmitOrder) (string, error) {
	f.calls.Add(1)
	f.got = order
	if f.block != nil {
		<-f.block
	}
	return f.orderID, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bagLine(qty int32) Line {
	return Line{
		ProductID: "1",
		Name:      "Reusable Bag",
		UnitPrice: domain.Money{Currency: "INR", Amount: 299},
		Quantity:  qty,
	}
}

func readyGate() (*Gate, *fakeCart, *fakeSessions, *fakeAddresses, *fakeSubmitter) {
	cart := &fakeCart{lines: []Line{bagLine(2)}}
	sessions := &fakeSessions{identity: Identity{UserID: "user-1", Email: "eco@example.com"}, signedIn: true}
	addresses := &fakeAddresses{address: Address{DisplayText: "12 MG Road, Bengaluru"}, found: true}
	submitter := &fakeSubmitter{orderID: "order-1"}
	return NewGate(cart, sessions, addresses, submitter, testLogger()), cart, sessions, addresses, submitter
}

func TestBegin(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart -> ErrEmptyCart, stays Idle", func(t *testing.T) {
		gate, cart, sessions, _, _ := readyGate()
		cart.lines = nil

		_, err := gate.Begin(ctx)
		if !errors.Is(err, ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
		if gate.State() != domain.StateIdle {
			t.Fatalf("expected Idle, got %v", gate.State())
		}
		if sessions.calls != 0 {
			t.Fatalf("session checked before cart, %d calls", sessions.calls)
		}
	})

	t.Run("signed out -> redirect to sign-in, address never read", func(t *testing.T) {
		gate, _, sessions, addresses, _ := readyGate()
		sessions.signedIn = false

		_, err := gate.Begin(ctx)
		var redirect *RedirectError
		if !errors.As(err, &redirect) {
			t.Fatalf("expected RedirectError, got %v", err)
		}
		if !errors.Is(err, ErrAuthenticationRequired) {
			t.Fatalf("expected ErrAuthenticationRequired reason, got %v", redirect.Reason)
		}
		if redirect.Location != "/login" || redirect.ReturnTo != "/cart" {
			t.Fatalf("unexpected redirect: %+v", redirect)
		}
		if addresses.calls != 0 {
			t.Fatalf("address read before identity check, %d calls", addresses.calls)
		}
		if gate.State() != domain.StateIdle {
			t.Fatalf("expected Idle, got %v", gate.State())
		}
	})

	t.Run("session read failure -> treated as signed out", func(t *testing.T) {
		gate, _, sessions, _, _ := readyGate()
		sessions.err = errors.New("provider down")

		_, err := gate.Begin(ctx)
		if !errors.Is(err, ErrAuthenticationRequired) {
			t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
		}
	})

	t.Run("no saved address -> redirect to address page", func(t *testing.T) {
		gate, _, _, addresses, _ := readyGate()
		addresses.found = false

		_, err := gate.Begin(ctx)
		var redirect *RedirectError
		if !errors.As(err, &redirect) {
			t.Fatalf("expected RedirectError, got %v", err)
		}
		if !errors.Is(err, ErrAddressRequired) {
			t.Fatalf("expected ErrAddressRequired reason, got %v", redirect.Reason)
		}
		if redirect.Location != "/address" || redirect.ReturnTo != "/cart" {
			t.Fatalf("unexpected redirect: %+v", redirect)
		}
	})

	t.Run("address read failure -> treated as absent", func(t *testing.T) {
		gate, _, _, addresses, _ := readyGate()
		addresses.err = errors.New("db down")

		_, err := gate.Begin(ctx)
		if !errors.Is(err, ErrAddressRequired) {
			t.Fatalf("expected ErrAddressRequired, got %v", err)
		}
	})

	t.Run("all preconditions hold -> Confirming with summary", func(t *testing.T) {
		gate, _, _, _, _ := readyGate()

		summary, err := gate.Begin(ctx)
		if err != nil {
			t.Fatalf("Begin failed: %v", err)
		}
		if gate.State() != domain.StateConfirming {
			t.Fatalf("expected Confirming, got %v", gate.State())
		}
		if summary.Email != "eco@example.com" || summary.AddressText != "12 MG Road, Bengaluru" {
			t.Fatalf("unexpected summary header: %+v", summary)
		}
		if summary.Total != (domain.Money{Currency: "INR", Amount: 598}) {
			t.Fatalf("expected total 598 INR, got %+v", summary.Total)
		}
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("without a pending attempt -> ErrNoAttempt", func(t *testing.T) {
		gate, _, _, _, _ := readyGate()

		if _, err := gate.Confirm(ctx); !errors.Is(err, ErrNoAttempt) {
			t.Fatalf("expected ErrNoAttempt, got %v", err)
		}
	})

	t.Run("success -> Submitted with the order id", func(t *testing.T) {
		gate, _, _, _, submitter := readyGate()

		if _, err := gate.Begin(ctx); err != nil {
			t.Fatalf("Begin failed: %v", err)
		}
		orderID, err := gate.Confirm(ctx)
		if err != nil {
			t.Fatalf("Confirm failed: %v", err)
		}
		if orderID != "order-1" {
			t.Fatalf("expected order-1, got %s", orderID)
		}
		if gate.State() != domain.StateSubmitted {
			t.Fatalf("expected Submitted, got %v", gate.State())
		}
		if submitter.got.Identity.UserID != "user-1" || len(submitter.got.Lines) != 1 {
			t.Fatalf("unexpected submit payload: %+v", submitter.got)
		}
	})

	t.Run("submit failure -> stays Confirming for retry", func(t *testing.T) {
		gate, _, _, _, submitter := readyGate()
		submitter.err = errors.New("persistence down")

		if _, err := gate.Begin(ctx); err != nil {
			t.Fatalf("Begin failed: %v", err)
		}
		if _, err := gate.Confirm(ctx); err == nil {
			t.Fatal("expected submit error, got nil")
		}
		if gate.State() != domain.StateConfirming {
			t.Fatalf("expected Confirming after failure, got %v", gate.State())
		}

		submitter.err = nil
		if _, err := gate.Confirm(ctx); err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if gate.State() != domain.StateSubmitted {
			t.Fatalf("expected Submitted after retry, got %v", gate.State())
		}
	})

	t.Run("double confirm while in flight -> exactly one order", func(t *testing.T) {
		gate, _, _, _, submitter := readyGate()
		submitter.block = make(chan struct{})

		if _, err := gate.Begin(ctx); err != nil {
			t.Fatalf("Begin failed: %v", err)
		}

		done := make(chan error, 1)
		go func() {
			_, err := gate.Confirm(ctx)
			done <- err
		}()

		// wait for the first confirm to reach the submitter
		for submitter.calls.Load() == 0 {
			time.Sleep(time.Millisecond)
		}

		if _, err := gate.Confirm(ctx); !errors.Is(err, ErrSubmitInFlight) {
			t.Fatalf("expected ErrSubmitInFlight, got %v", err)
		}

		close(submitter.block)
		if err := <-done; err != nil {
			t.Fatalf("first confirm failed: %v", err)
		}
		if got := submitter.calls.Load(); got != 1 {
			t.Fatalf("expected exactly 1 submit, got %d", got)
		}
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	gate, _, _, _, _ := readyGate()

	if _, err := gate.Begin(ctx); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	gate.Cancel()

	if gate.State() != domain.StateIdle {
		t.Fatalf("expected Idle after cancel, got %v", gate.State())
	}
	if _, err := gate.Confirm(ctx); !errors.Is(err, ErrNoAttempt) {
		t.Fatalf("expected ErrNoAttempt after cancel, got %v", err)
	}
}
