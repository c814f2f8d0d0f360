package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ecocart/storefront/internal/checkout/app"
	orderapp "github.com/ecocart/storefront/internal/order/app"
	"github.com/ecocart/storefront/pkg/httpx"
)

type Handler struct {
	gate *app.Gate
	log  *slog.Logger
}

func NewHandler(gate *app.Gate, log *slog.Logger) *Handler {
	return &Handler{gate: gate, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/checkout", h.begin).Methods(http.MethodPost)
	r.HandleFunc("/checkout/confirm", h.confirm).Methods(http.MethodPost)
	r.HandleFunc("/checkout/cancel", h.cancel).Methods(http.MethodPost)
	r.HandleFunc("/checkout/state", h.state).Methods(http.MethodGet)
}

func (h *Handler) begin(w http.ResponseWriter, r *http.Request) {
	summary, err := h.gate.Begin(r.Context())
	if err != nil {
		h.writeGateError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	orderID, err := h.gate.Confirm(r.Context())
	if err != nil {
		h.writeGateError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"order_id": orderID})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.gate.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"state": h.gate.State().String()})
}

// writeGateError maps gate outcomes to HTTP statuses. Precondition failures
// are guidance with a redirect, not hard errors; persistence failures get a
// retry affordance via 502.
func (h *Handler) writeGateError(w http.ResponseWriter, err error) {
	var redirect *app.RedirectError
	if errors.As(err, &redirect) {
		status := http.StatusPreconditionFailed
		code := "ADDRESS_REQUIRED"
		if errors.Is(redirect.Reason, app.ErrAuthenticationRequired) {
			status = http.StatusUnauthorized
			code = "AUTHENTICATION_REQUIRED"
		}
		httpx.WriteError(w, status, httpx.ErrorInfo{
			Code:     code,
			Message:  redirect.Reason.Error(),
			Redirect: redirect.Location,
			ReturnTo: redirect.ReturnTo,
		})
		return
	}

	switch {
	case errors.Is(err, app.ErrEmptyCart):
		httpx.WriteError(w, http.StatusConflict, httpx.ErrorInfo{Code: "EMPTY_CART", Message: "cart is empty"})
	case errors.Is(err, app.ErrSubmitInFlight):
		httpx.WriteError(w, http.StatusTooManyRequests, httpx.ErrorInfo{Code: "SUBMIT_IN_FLIGHT", Message: "a submission is already in flight"})
	case errors.Is(err, app.ErrNoAttempt):
		httpx.WriteError(w, http.StatusConflict, httpx.ErrorInfo{Code: "NO_ATTEMPT", Message: "no checkout attempt awaiting confirmation"})
	case errors.Is(err, orderapp.ErrOrderPersistence):
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "ORDER_PERSISTENCE_FAILED", Message: "order could not be saved, cart kept for retry"})
	default:
		h.log.Error("checkout failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrorInfo{Code: "INTERNAL", Message: "checkout failed"})
	}
}
