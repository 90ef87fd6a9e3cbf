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

type RatingsHandler struct {
	Ratings *services.RatingService
}

func NewRatingsHandler(s *services.RatingService) *RatingsHandler {
	return &RatingsHandler{Ratings: s}
}

func (h *RatingsHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if err := validate.Collect(validate.Range("rating", int64(req.Rating), 1, 5)); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid rating", err)
		return
	}
	caller := middleware.FromCtx(r.Context())
	cr, err := h.Ratings.Rate(r.Context(), models.CustomerRating{
		UserID:  chi.URLParam(r, "id"),
		RaterID: caller.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, cr)
}

func (h *RatingsHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.Ratings.ListForUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ratings)
}
