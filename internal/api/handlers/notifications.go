package handlers

import (
	"net/http"

	"github.com/edumarket/edumarket-backend/internal/api/httpx"
	"github.com/edumarket/edumarket-backend/internal/middleware"
	"github.com/edumarket/edumarket-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type NotificationsHandler struct {
	Notifications *services.NotificationService
}

func NewNotificationsHandler(s *services.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{Notifications: s}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	out, err := h.Notifications.ListByUser(r.Context(), caller.UserID)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	if err := h.Notifications.MarkRead(r.Context(), chi.URLParam(r, "id"), caller.UserID); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
