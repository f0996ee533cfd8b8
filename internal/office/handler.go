package office

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db, nil), logger: logger}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	offices, err := h.svc.List(r.Context())
	if err != nil {
		h.internal(w, "list offices failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, offices)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}
		h.internal(w, "get office failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, o)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	o, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.internal(w, "create office failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, o)
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	var in PatchInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	o, err := h.svc.Patch(r.Context(), r.PathValue("id"), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}
		h.internal(w, "patch office failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, o)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}
		h.internal(w, "delete office failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *Handler) internal(w http.ResponseWriter, msg string, err error) {
	h.logger.Warnw(msg, "err", err)
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
