package favorite

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/estately/service-listing-go/internal/auth"
)

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db, nil), logger: logger}
}

// Add favorites the property in the path for the authenticated caller.
// The user id always comes from the verified identity, never from the
// body, so a caller cannot favorite on another user's behalf.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFrom(r.Context())
	if ident == nil {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	f, err := h.svc.Add(r.Context(), ident.ID, r.PathValue("propertyId"))
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "you have already favorited this property"})
			return
		}
		h.logger.Warnw("add favorite failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, f)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFrom(r.Context())
	if ident == nil {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	if err := h.svc.Remove(r.Context(), ident.ID, r.PathValue("propertyId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"message": "favorite not found"})
			return
		}
		h.logger.Warnw("remove favorite failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "favorite removed"})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.svc.List(r.Context(), r.PathValue("userId"))
	if err != nil {
		h.logger.Warnw("list favorites failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, favorites)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
