package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/edumarket/edumarket-backend/internal/api/httpx"
	"github.com/edumarket/edumarket-backend/internal/api/validate"
	"github.com/edumarket/edumarket-backend/internal/middleware"
	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type WithdrawalsHandler struct {
	Withdrawals *services.WithdrawalService
}

func NewWithdrawalsHandler(s *services.WithdrawalService) *WithdrawalsHandler {
	return &WithdrawalsHandler{Withdrawals: s}
}

func (h *WithdrawalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if err := validate.Collect(validate.MinInt("amount", req.Amount, 1)); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid withdrawal", err)
		return
	}

	caller := middleware.FromCtx(r.Context())
	wd, err := h.Withdrawals.Request(r.Context(), caller.UserID, req.Amount)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, wd)
}

// List returns the caller's withdrawals; admins see everyone's.
func (h *WithdrawalsHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	limit, offset := pagination(r)

	var (
		out []models.Withdrawal
		err error
	)
	if caller.Role == models.RoleAdmin {
		out, err = h.Withdrawals.ListAll(r.Context(), limit, offset)
	} else {
		out, err = h.Withdrawals.ListByUser(r.Context(), caller.UserID, limit, offset)
	}
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *WithdrawalsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	wd, err := h.Withdrawals.Accept(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wd)
}

func (h *WithdrawalsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	wd, err := h.Withdrawals.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wd)
}

func (h *WithdrawalsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoutingNumber string    `json:"routing_number"`
		RoutingDate   time.Time `json:"routing_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	wd, err := h.Withdrawals.Complete(r.Context(), chi.URLParam(r, "id"), req.RoutingNumber, req.RoutingDate)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wd)
}
