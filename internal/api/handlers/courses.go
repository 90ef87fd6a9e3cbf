package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/edumarket/edumarket-backend/internal/api/httpx"
	"github.com/edumarket/edumarket-backend/internal/middleware"
	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type CoursesHandler struct {
	Courses *services.CourseService
}

func NewCoursesHandler(c *services.CourseService) *CoursesHandler {
	return &CoursesHandler{Courses: c}
}

type courseReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CoverURL    string `json:"cover_url"`
}

func (h *CoursesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req courseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	caller := middleware.FromCtx(r.Context())
	c, err := h.Courses.Create(r.Context(), models.Course{
		OwnerID:     caller.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *CoursesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	courses, err := h.Courses.List(r.Context(), limit, offset)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, courses)
}

func (h *CoursesHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Courses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *CoursesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req courseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	caller := middleware.FromCtx(r.Context())
	c, err := h.Courses.Update(r.Context(), caller.UserID, models.Course{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *CoursesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	if err := h.Courses.Delete(r.Context(), caller.UserID, chi.URLParam(r, "id")); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CoursesHandler) AddModule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		Position int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	caller := middleware.FromCtx(r.Context())
	m, err := h.Courses.AddModule(r.Context(), caller.UserID, models.CourseModule{
		CourseID: chi.URLParam(r, "id"),
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, m)
}

func (h *CoursesHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title           string `json:"title"`
		VideoURL        string `json:"video_url"`
		DurationSeconds int    `json:"duration_seconds"`
		Position        int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	caller := middleware.FromCtx(r.Context())
	l, err := h.Courses.AddLesson(r.Context(), caller.UserID, models.Lesson{
		ModuleID:        chi.URLParam(r, "id"),
		Title:           req.Title,
		VideoURL:        req.VideoURL,
		DurationSeconds: req.DurationSeconds,
		Position:        req.Position,
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, l)
}

func (h *CoursesHandler) Content(w http.ResponseWriter, r *http.Request) {
	content, err := h.Courses.Content(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, content)
}
