package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/money"
	"github.com/edumarket/edumarket-backend/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchaseFixture(t *testing.T) (*PurchaseService, *fakeStore, models.Note) {
	t.Helper()
	f := newFakeStore()
	svc := NewPurchaseService(f, f, fakeSales{f}, fakeAudit{f}, money.NewPricing(0.10, 0.03, 200))

	note, err := f.Create(context.Background(), models.Note{
		OwnerID: "seller-1",
		Title:   "Linear Algebra Midterm Notes",
		Price:   10000,
	})
	require.NoError(t, err)
	return svc, f, note
}

func TestPurchaseSplitsPriceIntoPayoutAndCommission(t *testing.T) {
	svc, f, note := newPurchaseFixture(t)

	sale, err := svc.Purchase(context.Background(), note.ID, "buyer-1", "inv-1", "paid")
	require.NoError(t, err)

	// 10% + 3% of 100.00 plus a 2.00 fee.
	assert.Equal(t, int64(8500), sale.Amount)
	assert.Equal(t, int64(1500), sale.Commission)
	assert.Equal(t, note.Price, sale.Amount+sale.Commission)
	assert.Equal(t, "seller-1", sale.SellerID)
	assert.Equal(t, "inv-1", sale.InvoiceID)

	assert.Equal(t, int64(8500), f.balances["seller-1"])

	got, err := f.GetByID(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Downloads)

	purchased, err := svc.ListPurchased(context.Background(), "buyer-1")
	require.NoError(t, err)
	require.Len(t, purchased, 1)
	assert.Equal(t, note.Title, purchased[0].Title)
	assert.Equal(t, note.Price, purchased[0].Price)
}

func TestPurchaseEnqueuesBuyerAndSellerNotifications(t *testing.T) {
	svc, f, note := newPurchaseFixture(t)

	_, err := svc.Purchase(context.Background(), note.ID, "buyer-1", "inv-1", "paid")
	require.NoError(t, err)

	require.Len(t, f.events, 2)

	var sold, bought notify.Payload
	require.NoError(t, json.Unmarshal(f.events[0].Payload, &sold))
	require.NoError(t, json.Unmarshal(f.events[1].Payload, &bought))
	assert.Equal(t, models.NotifyNoteSold, sold.Type)
	assert.Equal(t, "seller-1", sold.UserID)
	assert.Equal(t, models.NotifyNotePurchased, bought.Type)
	assert.Equal(t, "buyer-1", bought.UserID)
}

func TestPurchaseDuplicateIsRejectedWithoutSideEffects(t *testing.T) {
	svc, f, note := newPurchaseFixture(t)

	_, err := svc.Purchase(context.Background(), note.ID, "buyer-1", "inv-1", "paid")
	require.NoError(t, err)

	_, err = svc.Purchase(context.Background(), note.ID, "buyer-1", "inv-2", "paid")
	assert.ErrorIs(t, err, ErrInvalidState)

	// Balance was credited exactly once and the download counter did not move.
	assert.Equal(t, int64(8500), f.balances["seller-1"])
	got, _ := f.GetByID(context.Background(), note.ID)
	assert.Equal(t, int64(1), got.Downloads)
	assert.Len(t, f.sales, 1)
}

func TestPurchaseOwnNoteRejected(t *testing.T) {
	svc, f, note := newPurchaseFixture(t)

	_, err := svc.Purchase(context.Background(), note.ID, "seller-1", "inv-1", "paid")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, f.sales)
	assert.Zero(t, f.balances["seller-1"])
}

func TestPurchaseUnknownNote(t *testing.T) {
	svc, _, _ := newPurchaseFixture(t)

	_, err := svc.Purchase(context.Background(), "no-such-note", "buyer-1", "inv-1", "paid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurchaseUnpaidInvoiceRejected(t *testing.T) {
	svc, f, note := newPurchaseFixture(t)

	_, err := svc.Purchase(context.Background(), note.ID, "buyer-1", "inv-1", "pending")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, f.sales)
}

func TestPurchasePriceBelowFees(t *testing.T) {
	svc, f, _ := newPurchaseFixture(t)

	cheap, err := f.Create(context.Background(), models.Note{
		OwnerID: "seller-1",
		Title:   "One-pager",
		Price:   100, // commission 2.13 exceeds the 1.00 price
	})
	require.NoError(t, err)

	_, err = svc.Purchase(context.Background(), cheap.ID, "buyer-1", "inv-1", "paid")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPurchaseConcurrentSameBuyerExactlyOneWins(t *testing.T) {
	svc, f, note := newPurchaseFixture(t)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase(context.Background(), note.ID, "buyer-1", "inv-1", "paid")
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrInvalidState)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, int64(8500), f.balances["seller-1"])
	assert.Len(t, f.sales, 1)
}

func TestPurchaseDistinctBuyersBothSettle(t *testing.T) {
	svc, f, note := newPurchaseFixture(t)

	_, err := svc.Purchase(context.Background(), note.ID, "buyer-1", "inv-1", "paid")
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), note.ID, "buyer-2", "inv-2", "paid")
	require.NoError(t, err)

	assert.Equal(t, int64(17000), f.balances["seller-1"])
	sales, err := svc.ListSales(context.Background(), "seller-1", 50, 0)
	require.NoError(t, err)
	assert.Len(t, sales, 2)
}
