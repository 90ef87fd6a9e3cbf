package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/edumarket/edumarket-backend/internal/api/httpx"
	"github.com/edumarket/edumarket-backend/internal/api/validate"
	"github.com/edumarket/edumarket-backend/internal/middleware"
	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type NotesHandler struct {
	Notes     *services.NoteService
	Purchases *services.PurchaseService
}

func NewNotesHandler(notes *services.NoteService, purchases *services.PurchaseService) *NotesHandler {
	return &NotesHandler{Notes: notes, Purchases: purchases}
}

type noteReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	CoverURL    string `json:"cover_url"`
	FileURL     string `json:"file_url"`
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if err := validate.Collect(
		validate.Required("title", req.Title),
		validate.MinInt("price", req.Price, 0),
	); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid note", err)
		return
	}

	caller := middleware.FromCtx(r.Context())
	n, err := h.Notes.Create(r.Context(), models.Note{
		OwnerID:     caller.UserID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CoverURL:    req.CoverURL,
		FileURL:     req.FileURL,
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, n)
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	notes, err := h.Notes.List(r.Context(), limit, offset)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, notes)
}

func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.Notes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, n)
}

func (h *NotesHandler) Mine(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	notes, err := h.Notes.ListByOwner(r.Context(), caller.UserID)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, notes)
}

func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req noteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	caller := middleware.FromCtx(r.Context())
	n, err := h.Notes.Update(r.Context(), caller.UserID, models.Note{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CoverURL:    req.CoverURL,
		FileURL:     req.FileURL,
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, n)
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	if err := h.Notes.Delete(r.Context(), caller.UserID, chi.URLParam(r, "id")); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttachFile streams the request body through the uploader and records the
// resulting URL on the note. The filename comes from a query parameter so
// the body stays raw.
func (h *NotesHandler) AttachFile(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "filename required", nil)
		return
	}
	caller := middleware.FromCtx(r.Context())
	n, err := h.Notes.AttachFile(r.Context(), caller.UserID, chi.URLParam(r, "id"), filename, r.Body)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, n)
}

func (h *NotesHandler) Purchased(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	notes, err := h.Purchases.ListPurchased(r.Context(), caller.UserID)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, notes)
}

func (h *NotesHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if err := validate.Collect(validate.Range("rating", int64(req.Rating), 1, 5)); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid review", err)
		return
	}
	caller := middleware.FromCtx(r.Context())
	rv, err := h.Notes.AddReview(r.Context(), models.NoteReview{
		NoteID:  chi.URLParam(r, "id"),
		UserID:  caller.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, rv)
}

func (h *NotesHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Notes.ListReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reviews)
}
