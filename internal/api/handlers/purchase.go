package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/edumarket/edumarket-backend/internal/api/httpx"
	"github.com/edumarket/edumarket-backend/internal/api/validate"
	"github.com/edumarket/edumarket-backend/internal/middleware"
	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type PurchaseHandler struct {
	Purchases *services.PurchaseService
}

func NewPurchaseHandler(p *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{Purchases: p}
}

// Purchase settles one note sale for the caller. invoice_id and status come
// from the payment gateway as settled facts.
func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NoteID    string `json:"note_id"`
		InvoiceID string `json:"invoice_id"`
		Status    string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if err := validate.Collect(validate.Required("note_id", req.NoteID)); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid purchase", err)
		return
	}

	caller := middleware.FromCtx(r.Context())
	sale, err := h.Purchases.Purchase(r.Context(), req.NoteID, caller.UserID, req.InvoiceID, req.Status)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sale)
}

func (h *PurchaseHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	caller := middleware.FromCtx(r.Context())
	limit, offset := pagination(r)
	sales, err := h.Purchases.ListSales(r.Context(), caller.UserID, limit, offset)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sales)
}

func (h *PurchaseHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.Purchases.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	caller := middleware.FromCtx(r.Context())
	if sale.SellerID != caller.UserID && sale.BuyerID != caller.UserID && caller.Role != models.RoleAdmin {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "not a party to this sale", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sale)
}

func pagination(r *http.Request) (limit, offset int) {
	limit, offset = 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
