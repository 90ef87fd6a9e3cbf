package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/edumarket/edumarket-backend/internal/api/httpx"
	"github.com/edumarket/edumarket-backend/internal/middleware"
	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/services"
)

type AnnouncementsHandler struct {
	Announcements *services.AnnouncementService
}

func NewAnnouncementsHandler(s *services.AnnouncementService) *AnnouncementsHandler {
	return &AnnouncementsHandler{Announcements: s}
}

func (h *AnnouncementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	caller := middleware.FromCtx(r.Context())
	a, err := h.Announcements.Create(r.Context(), models.Announcement{
		AuthorID: caller.UserID,
		Title:    req.Title,
		Body:     req.Body,
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, a)
}

func (h *AnnouncementsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	out, err := h.Announcements.List(r.Context(), limit, offset)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
