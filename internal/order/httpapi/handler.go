package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	identitydomain "github.com/ecocart/storefront/internal/identity/domain"
	"github.com/ecocart/storefront/internal/order/app"
	"github.com/ecocart/storefront/pkg/httpx"
)

type Sessions interface {
	GetSession(ctx context.Context) (identitydomain.Identity, bool, error)
}

type Handler struct {
	orders   *app.Submitter
	sessions Sessions
	log      *slog.Logger
}

func NewHandler(orders *app.Submitter, sessions Sessions, log *slog.Logger) *Handler {
	return &Handler{orders: orders, sessions: sessions, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/orders", h.history).Methods(http.MethodGet)
}

type orderView struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Currency    string          `json:"currency"`
	TotalAmount int64           `json:"total_amount"`
	AddressText string          `json:"address_text"`
	Lines       []orderLineView `json:"lines"`
	CreatedAt   time.Time       `json:"created_at"`
}

type orderLineView struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	UnitAmount      int64  `json:"unit_amount"`
	Quantity        int32  `json:"quantity"`
	LineTotalAmount int64  `json:"line_total_amount"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, ok, err := h.sessions.GetSession(r.Context())
	if err != nil || !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrorInfo{Code: "NO_SESSION", Message: "not signed in"})
		return
	}

	orders, err := h.orders.History(r.Context(), id.UserID)
	if err != nil {
		h.log.Error("order history failed", slog.String("user_id", id.UserID), slog.Any("err", err))
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "PERSISTENCE_FAILED", Message: "orders could not be loaded"})
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		lines := make([]orderLineView, 0, len(o.Lines))
		for _, l := range o.Lines {
			lines = append(lines, orderLineView{
				ProductID:       l.ProductID,
				Name:            l.Name,
				UnitAmount:      l.UnitAmount,
				Quantity:        l.Quantity,
				LineTotalAmount: l.LineTotalAmount,
			})
		}
		views = append(views, orderView{
			ID:          o.ID,
			Status:      o.Status,
			Currency:    o.Currency,
			TotalAmount: o.TotalAmount,
			AddressText: o.Address.DisplayText,
			Lines:       lines,
			CreatedAt:   o.CreatedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}
