package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ecocart/storefront/internal/catalog/app"
	"github.com/ecocart/storefront/internal/catalog/domain"
	"github.com/ecocart/storefront/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/products", h.list).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.get).Methods(http.MethodGet)
}

type productView struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Price    domain.Money `json:"price"`
	ImageRef string       `json:"image_ref"`
	Category string       `json:"category"`
	Stock    int32        `json:"stock"`
}

func toView(p domain.Product) productView {
	return productView{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageRef: p.ImageRef,
		Category: p.Category,
		Stock:    p.Stock,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.svc.ListProducts(r.Context(), limit)
	if err != nil {
		h.log.Error("product list failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "UNAVAILABLE", Message: "catalog unavailable"})
		return
	}

	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toView(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrorInfo{Code: "NOT_FOUND", Message: "product not found"})
		case errors.Is(err, app.ErrInvalidInput):
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorInfo{Code: "INVALID_ARGUMENT", Message: "invalid product id"})
		default:
			h.log.Error("product read failed", slog.Any("err", err))
			httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "UNAVAILABLE", Message: "catalog unavailable"})
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toView(p))
}
