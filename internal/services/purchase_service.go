package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/edumarket/edumarket-backend/internal/metrics"
	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/money"
	"github.com/edumarket/edumarket-backend/internal/notify"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
)

const invoicePaid = "paid"

type PurchaseService struct {
	notes     repo.Notes
	purchases repo.Purchases
	sales     repo.Sales
	audit     repo.AuditLogs
	pricing   money.Pricing
}

func NewPurchaseService(n repo.Notes, p repo.Purchases, s repo.Sales, a repo.AuditLogs, pricing money.Pricing) *PurchaseService {
	return &PurchaseService{notes: n, purchases: p, sales: s, audit: a, pricing: pricing}
}

// Purchase settles one note sale for the buyer. The invoice id and status
// arrive as already-settled facts from the payment gateway; nothing here
// re-verifies them. The multi-record write happens in a single storage
// transaction keyed by (noteID, buyerID), so a retry or a concurrent
// duplicate fails with ErrInvalidState and changes nothing.
func (s *PurchaseService) Purchase(ctx context.Context, noteID, buyerID, invoiceID, invoiceStatus string) (models.Sale, error) {
	if invoiceStatus != "" && invoiceStatus != invoicePaid {
		return models.Sale{}, fmt.Errorf("%w: invoice status %q", ErrInvalidState, invoiceStatus)
	}

	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return models.Sale{}, fromRepo(err)
	}
	if note.OwnerID == buyerID {
		return models.Sale{}, fmt.Errorf("%w: cannot purchase own note", ErrInvalidState)
	}

	payout, commission, err := s.pricing.SplitPrice(note.Price)
	if err != nil {
		return models.Sale{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	sale, err := s.purchases.Settle(ctx, repo.SettleParams{
		NoteID:     note.ID,
		BuyerID:    buyerID,
		SellerID:   note.OwnerID,
		Price:      note.Price,
		Payout:     payout,
		Commission: commission,
		InvoiceID:  invoiceID,
		Title:      note.Title,
		CoverURL:   note.CoverURL,
		FileURL:    note.FileURL,
		Events: []models.OutboxEvent{
			notify.NewEvent(note.OwnerID, "Note sold",
				fmt.Sprintf("%q sold for %s, your payout is %s", note.Title, money.Format(note.Price), money.Format(payout)),
				models.NotifyNoteSold),
			notify.NewEvent(buyerID, "Purchase complete",
				fmt.Sprintf("You bought %q for %s", note.Title, money.Format(note.Price)),
				models.NotifyNotePurchased),
		},
	})
	if err != nil {
		metrics.PurchasesFailed.Inc()
		if errors.Is(err, repo.ErrConflict) {
			return models.Sale{}, fmt.Errorf("%w: note already purchased", ErrInvalidState)
		}
		return models.Sale{}, fromRepo(err)
	}

	metrics.PurchasesTotal.Inc()
	s.auditSale(ctx, sale)
	return sale, nil
}

func (s *PurchaseService) auditSale(ctx context.Context, sale models.Sale) {
	if err := s.audit.Create(ctx, models.AuditLog{
		EntityType: "sale",
		EntityID:   &sale.ID,
		Action:     "purchase_settled",
		Details: map[string]any{
			"note_id":    sale.NoteID,
			"buyer_id":   sale.BuyerID,
			"seller_id":  sale.SellerID,
			"amount":     sale.Amount,
			"commission": sale.Commission,
		},
	}); err != nil {
		slog.Warn("audit write failed", "sale_id", sale.ID, "err", err)
	}
}

func (s *PurchaseService) GetSale(ctx context.Context, id string) (models.Sale, error) {
	sale, err := s.sales.GetByID(ctx, id)
	return sale, fromRepo(err)
}

func (s *PurchaseService) ListSales(ctx context.Context, sellerID string, limit, offset int) ([]models.Sale, error) {
	sales, err := s.sales.ListBySeller(ctx, sellerID, limit, offset)
	return sales, fromRepo(err)
}

func (s *PurchaseService) ListPurchased(ctx context.Context, userID string) ([]models.PurchasedNote, error) {
	notes, err := s.purchases.ListPurchased(ctx, userID)
	return notes, fromRepo(err)
}
