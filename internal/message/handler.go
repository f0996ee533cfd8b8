package message

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

type sendRequest struct {
	Body string `json:"body"`
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	senderID := ""
	if ident := auth.IdentityFrom(r.Context()); ident != nil {
		senderID = ident.ID
	}
	m, err := h.svc.Send(r.Context(), r.PathValue("officeId"), r.PathValue("propertyId"), senderID, req.Body)
	if err != nil {
		h.logger.Warnw("send message failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error saving message"})
		return
	}
	h.writeJSON(w, http.StatusOK, m)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkRead(r.Context(), r.PathValue("messageId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}
		h.logger.Warnw("mark read failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error marking message as read"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "message marked as read"})
}

func (h *Handler) ListThread(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.ListThread(r.Context(), r.PathValue("officeId"), r.PathValue("propertyId"))
	if err != nil {
		h.logger.Warnw("list messages failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.writeJSON(w, http.StatusOK, messages)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
