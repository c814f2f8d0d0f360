package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ecocart/storefront/internal/identity/domain"
	"github.com/ecocart/storefront/internal/identity/infra/rest"
	"github.com/ecocart/storefront/pkg/httpx"
)

type Handler struct {
	client *rest.Client
	log    *slog.Logger
}

func NewHandler(client *rest.Client, log *slog.Logger) *Handler {
	return &Handler{client: client, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/auth/sign-in", h.signIn).Methods(http.MethodPost)
	r.HandleFunc("/auth/sign-up", h.signUp).Methods(http.MethodPost)
	r.HandleFunc("/auth/sign-out", h.signOut).Methods(http.MethodPost)
	r.HandleFunc("/auth/session", h.session).Methods(http.MethodGet)
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionView struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.client.SignIn)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.client.SignUp)
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, creds domain.Credentials) (domain.Identity, error)) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorInfo{Code: "INVALID_BODY", Message: "invalid request body"})
		return
	}
	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorInfo{Code: "INVALID_CREDENTIALS", Message: "email and password are required"})
		return
	}

	id, err := fn(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		h.log.Warn("authentication failed", slog.String("email", body.Email), slog.Any("err", err))
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrorInfo{Code: "AUTHENTICATION_FAILED", Message: "authentication failed"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionView{UserID: id.UserID, Email: id.Email})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	h.client.SignOut()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	id, ok, err := h.client.GetSession(r.Context())
	if err != nil || !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrorInfo{Code: "NO_SESSION", Message: "not signed in"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionView{UserID: id.UserID, Email: id.Email})
}
