package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ecocart/storefront/internal/address/app"
	"github.com/ecocart/storefront/internal/address/domain"
	identitydomain "github.com/ecocart/storefront/internal/identity/domain"
	"github.com/ecocart/storefront/pkg/httpx"
)

// Sessions resolves the signed-in user for address writes.
type Sessions interface {
	GetSession(ctx context.Context) (identitydomain.Identity, bool, error)
}

type Handler struct {
	addresses *app.Service
	sessions  Sessions
	log       *slog.Logger
}

func NewHandler(addresses *app.Service, sessions Sessions, log *slog.Logger) *Handler {
	return &Handler{addresses: addresses, sessions: sessions, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/address/search", h.search).Methods(http.MethodGet)
	r.HandleFunc("/address/default", h.saveDefault).Methods(http.MethodPut)
	r.HandleFunc("/address/default", h.getDefault).Methods(http.MethodGet)
}

type placeView struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	places, err := h.addresses.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.log.Warn("address search failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "LOOKUP_UNAVAILABLE", Message: "address lookup unavailable"})
		return
	}

	views := make([]placeView, 0, len(places))
	for _, p := range places {
		views = append(views, placeView{ID: p.ID, DisplayName: p.DisplayName, Lat: p.Lat, Lon: p.Lon})
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

type addressBody struct {
	DisplayText string   `json:"display_text"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}

func (h *Handler) saveDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	var body addressBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorInfo{Code: "INVALID_BODY", Message: "invalid request body"})
		return
	}

	addr := domain.ShippingAddress{DisplayText: body.DisplayText, Lat: body.Lat, Lon: body.Lon}
	if err := h.addresses.SaveDefault(r.Context(), id.UserID, addr); err != nil {
		if errors.Is(err, app.ErrInvalidAddress) {
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorInfo{Code: "INVALID_ADDRESS", Message: err.Error()})
			return
		}
		h.log.Error("save default address failed", slog.String("user_id", id.UserID), slog.Any("err", err))
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "PERSISTENCE_FAILED", Message: "address could not be saved"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	addr, found, err := h.addresses.DefaultFor(r.Context(), id.UserID)
	if err != nil {
		h.log.Error("load default address failed", slog.String("user_id", id.UserID), slog.Any("err", err))
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "PERSISTENCE_FAILED", Message: "address could not be loaded"})
		return
	}
	if !found {
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrorInfo{Code: "NO_ADDRESS", Message: "no default address saved"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, addressBody{DisplayText: addr.DisplayText, Lat: addr.Lat, Lon: addr.Lon})
}

func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (identitydomain.Identity, bool) {
	id, ok, err := h.sessions.GetSession(r.Context())
	if err != nil || !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrorInfo{Code: "NO_SESSION", Message: "not signed in"})
		return identitydomain.Identity{}, false
	}
	return id, true
}
