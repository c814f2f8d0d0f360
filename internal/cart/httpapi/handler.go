package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	cartapp "github.com/ecocart/storefront/internal/cart/app"
	cartdomain "github.com/ecocart/storefront/internal/cart/domain"
	catalogapp "github.com/ecocart/storefront/internal/catalog/app"
	stockapp "github.com/ecocart/storefront/internal/stock/app"
	"github.com/ecocart/storefront/pkg/httpx"
)

// Handler mutates the session cart. Every mutation settles with the stock
// reconciler first: adds and quantity raises reserve remote stock before the
// cart changes, removals give the held quantity back. A reservation is only
// taken when a cart line will hold it.
type Handler struct {
	cart    *cartapp.Store
	catalog *catalogapp.Service
	stock   *stockapp.Reconciler
	log     *slog.Logger
}

func NewHandler(cart *cartapp.Store, catalog *catalogapp.Service, stock *stockapp.Reconciler, log *slog.Logger) *Handler {
	return &Handler{cart: cart, catalog: catalog, stock: stock, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/cart", h.get).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.clear).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", h.addItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", h.setQuantity).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id}", h.removeItem).Methods(http.MethodDelete)
}

type cartView struct {
	Lines []cartdomain.CartLine `json:"lines"`
	Count int32                 `json:"count"`
	Total cartdomain.Money      `json:"total"`
}

func (h *Handler) view() cartView {
	return cartView{Lines: h.cart.Lines(), Count: h.cart.Count(), Total: h.cart.Total()}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.view())
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorInfo{Code: "INVALID_ARGUMENT", Message: "product_id is required"})
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalogapp.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrorInfo{Code: "NOT_FOUND", Message: "product not found"})
			return
		}
		h.log.Error("product read failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "UNAVAILABLE", Message: "catalog unavailable"})
		return
	}

	// reserve the added unit; the matching release happens on removal
	old := h.cart.Quantity(p.ID)
	if err := h.stock.ReserveOnQuantityChange(r.Context(), p.ID, old, old+1); err != nil {
		if errors.Is(err, stockapp.ErrInsufficientStock) {
			httpx.WriteError(w, http.StatusConflict, httpx.ErrorInfo{Code: "INSUFFICIENT_STOCK", Message: "product is out of stock"})
			return
		}
		h.log.Error("stock reserve failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "UNAVAILABLE", Message: "stock unavailable"})
		return
	}

	h.cart.AddItem(cartdomain.Product{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: cartdomain.Money{Currency: p.Price.Currency, Amount: p.Price.Amount},
		ImageRef:  p.ImageRef,
		Category:  p.Category,
	})
	httpx.WriteJSON(w, http.StatusOK, h.view())
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	var req struct {
		Quantity int32 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorInfo{Code: "INVALID_ARGUMENT", Message: "quantity is required"})
		return
	}

	old := h.cart.Quantity(productID)
	if old == 0 && req.Quantity > 0 {
		// never reserve stock no cart line will hold
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrorInfo{Code: "NOT_FOUND", Message: "product is not in the cart"})
		return
	}
	if req.Quantity <= 0 {
		// equivalent to removal: return the held quantity to the pool
		if old > 0 {
			h.stock.ReleaseOnRemoval(r.Context(), productID, old)
		}
		h.cart.SetQuantity(productID, 0)
		httpx.WriteJSON(w, http.StatusOK, h.view())
		return
	}

	if err := h.stock.ReserveOnQuantityChange(r.Context(), productID, old, req.Quantity); err != nil {
		if errors.Is(err, stockapp.ErrInsufficientStock) {
			httpx.WriteError(w, http.StatusConflict, httpx.ErrorInfo{Code: "INSUFFICIENT_STOCK", Message: "not enough stock for requested quantity"})
			return
		}
		h.log.Error("stock reserve failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusBadGateway, httpx.ErrorInfo{Code: "UNAVAILABLE", Message: "stock unavailable"})
		return
	}

	h.cart.SetQuantity(productID, req.Quantity)
	httpx.WriteJSON(w, http.StatusOK, h.view())
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	if qty := h.cart.Quantity(productID); qty > 0 {
		h.stock.ReleaseOnRemoval(r.Context(), productID, qty)
	}
	h.cart.RemoveItem(productID)
	httpx.WriteJSON(w, http.StatusOK, h.view())
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	// abandoning the cart returns every held unit to the pool
	for _, ln := range h.cart.Lines() {
		h.stock.ReleaseOnRemoval(r.Context(), ln.ProductID, ln.Quantity)
	}
	h.cart.Clear()
	httpx.WriteJSON(w, http.StatusOK, h.view())
}
