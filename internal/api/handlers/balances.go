package handlers

import (
	"net/http"

	"github.com/edumarket/edumarket-backend/internal/api/httpx"
	"github.com/edumarket/edumarket-backend/internal/middleware"
	"github.com/edumarket/edumarket-backend/internal/services"
)

type BalancesHandler struct {
	Balances *services.BalanceService
}

func NewBalancesHandler(b *services.BalanceService) *BalancesHandler {
	return &BalancesHandler{Balances: b}
}

func (h *BalancesHandler) Current(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	b, err := h.Balances.Current(r.Context(), caller.UserID)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BalancesHandler) Profit(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	p, err := h.Balances.Profit(r.Context(), caller.UserID)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}
