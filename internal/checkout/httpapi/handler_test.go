package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/ecocart/storefront/internal/checkout/app"
	"github.com/ecocart/storefront/internal/checkout/domain"
)

type fakeCart struct {
	lines []app.Line
}

func (f *fakeCart) Lines() []app.Line { return f.lines }

type fakeSessions struct {
	signedIn bool
}

func (f *fakeSessions) GetSession(ctx context.Context) (app.Identity, bool, error) {
	return app.Identity{UserID: "user-1", Email: "eco@example.com"}, f.signedIn, nil
}

type fakeAddresses struct {
	found bool
}

func (f *fakeAddresses) DefaultFor(ctx context.Context, userID string) (app.Address, bool, error) {
	return app.Address{DisplayText: "12 MG Road, Bengaluru"}, f.found, nil
}

type fakeSubmitter struct {
	err error
}

func (f *fakeSubmitter) Submit(ctx context.Context, order app.SubmitOrder) (string, error) {
	return "order-1", f.err
}

type errorBody struct {
	Error struct {
		Code     string `json:"code"`
		Redirect string `json:"redirect,omitempty"`
		ReturnTo string `json:"return_to,omitempty"`
	} `json:"error"`
}

func newTestRouter(cart *fakeCart, sessions *fakeSessions, addresses *fakeAddresses, submitter *fakeSubmitter) (*mux.Router, *app.Gate) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := app.NewGate(cart, sessions, addresses, submitter, log)
	r := mux.NewRouter()
	NewHandler(gate, log).Register(r)
	return r, gate
}

func doPost(t *testing.T, r *mux.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return body
}

func stocked() *fakeCart {
	return &fakeCart{lines: []app.Line{{
		ProductID: "1",
		Name:      "Reusable Bag",
		UnitPrice: domain.Money{Currency: "INR", Amount: 299},
		Quantity:  2,
	}}}
}

func TestCheckoutErrorMapping(t *testing.T) {
	t.Run("empty cart -> 409 EMPTY_CART", func(t *testing.T) {
		r, _ := newTestRouter(&fakeCart{}, &fakeSessions{signedIn: true}, &fakeAddresses{found: true}, &fakeSubmitter{})

		rec := doPost(t, r, "/checkout")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if got := decodeError(t, rec).Error.Code; got != "EMPTY_CART" {
			t.Fatalf("expected EMPTY_CART, got %s", got)
		}
	})

	t.Run("signed out -> 401 with sign-in redirect", func(t *testing.T) {
		r, _ := newTestRouter(stocked(), &fakeSessions{}, &fakeAddresses{found: true}, &fakeSubmitter{})

		rec := doPost(t, r, "/checkout")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		body := decodeError(t, rec)
		if body.Error.Code != "AUTHENTICATION_REQUIRED" {
			t.Fatalf("expected AUTHENTICATION_REQUIRED, got %s", body.Error.Code)
		}
		if body.Error.Redirect != "/login" || body.Error.ReturnTo != "/cart" {
			t.Fatalf("unexpected redirect: %+v", body.Error)
		}
	})

	t.Run("no address -> 412 with address redirect", func(t *testing.T) {
		r, _ := newTestRouter(stocked(), &fakeSessions{signedIn: true}, &fakeAddresses{}, &fakeSubmitter{})

		rec := doPost(t, r, "/checkout")
		if rec.Code != http.StatusPreconditionFailed {
			t.Fatalf("expected 412, got %d", rec.Code)
		}
		body := decodeError(t, rec)
		if body.Error.Code != "ADDRESS_REQUIRED" || body.Error.Redirect != "/address" {
			t.Fatalf("unexpected body: %+v", body.Error)
		}
	})

	t.Run("confirm without attempt -> 409 NO_ATTEMPT", func(t *testing.T) {
		r, _ := newTestRouter(stocked(), &fakeSessions{signedIn: true}, &fakeAddresses{found: true}, &fakeSubmitter{})

		rec := doPost(t, r, "/checkout/confirm")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if got := decodeError(t, rec).Error.Code; got != "NO_ATTEMPT" {
			t.Fatalf("expected NO_ATTEMPT, got %s", got)
		}
	})
}

func TestCheckoutFlow(t *testing.T) {
	r, gate := newTestRouter(stocked(), &fakeSessions{signedIn: true}, &fakeAddresses{found: true}, &fakeSubmitter{})

	rec := doPost(t, r, "/checkout")
	if rec.Code != http.StatusOK {
		t.Fatalf("begin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doPost(t, r, "/checkout/confirm")
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var confirmed struct {
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &confirmed); err != nil {
		t.Fatalf("decoding confirm body: %v", err)
	}
	if confirmed.OrderID != "order-1" {
		t.Fatalf("expected order-1, got %s", confirmed.OrderID)
	}
	if gate.State() != domain.StateSubmitted {
		t.Fatalf("expected Submitted, got %v", gate.State())
	}

	rec = doPost(t, r, "/checkout/cancel")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("cancel: expected 204, got %d", rec.Code)
	}
	if gate.State() != domain.StateIdle {
		t.Fatalf("expected Idle after cancel, got %v", gate.State())
	}
}
