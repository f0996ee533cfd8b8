package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/estately/service-listing-go/internal/account/entity"
	"github.com/estately/service-listing-go/internal/auth"
)

// Handler exposes the registration/login endpoints and the management
// user CRUD.
type Handler struct {
	svc    *Service
	issuer *auth.TokenIssuer
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, issuer *auth.TokenIssuer, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db, nil), issuer: issuer, logger: logger}
}

// Service returns the underlying registry so the router can wire it
// into the authentication strategies.
func (h *Handler) Service() *Service { return h.svc }

// CredentialsRequest is the body of both /register and /login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse carries a freshly issued token next to the public
// account fields; secrets never appear here.
type authResponse struct {
	Token string `json:"token"`
	*entity.PublicAccount
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	a, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username already exists"})
			return
		}
		h.logger.Warnw("register failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	token, err := h.issuer.Issue(a.ID)
	if err != nil {
		h.logger.Errorw("token issue failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, authResponse{Token: token, PublicAccount: a.Public()})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	a, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
			return
		}
		h.logger.Warnw("login failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	token, err := h.issuer.Issue(a.ID)
	if err != nil {
		h.logger.Errorw("token issue failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, authResponse{Token: token, PublicAccount: a.Public()})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Warnw("list users failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	out := make([]*entity.PublicAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Public())
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}
		h.logger.Warnw("get user failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, a.Public())
}

// Create is the management-side account creation: same registration
// flow, no token in the response.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	a, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username already exists"})
			return
		}
		h.logger.Warnw("create user failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, a.Public())
}

// PatchRequest carries optional profile updates.
type PatchRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	a, err := h.svc.UpdateProfile(r.Context(), r.PathValue("id"), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		case errors.Is(err, ErrDuplicateUsername):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username already exists"})
		default:
			h.logger.Warnw("patch user failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, a.Public())
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}
		h.logger.Warnw("delete user failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
