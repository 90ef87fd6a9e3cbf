package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWithdrawalFixture(t *testing.T, balance int64) (*WithdrawalService, *fakeStore) {
	t.Helper()
	f := newFakeStore()
	f.balances["seller-1"] = balance
	svc := NewWithdrawalService(fakeWithdrawals{f}, fakeBalances{f}, fakeOutbox{f}, fakeAudit{f})
	return svc, f
}

func acceptedWithdrawal(t *testing.T, svc *WithdrawalService, amount int64) models.Withdrawal {
	t.Helper()
	w, err := svc.Request(context.Background(), "seller-1", amount)
	require.NoError(t, err)
	w, err = svc.Accept(context.Background(), w.ID)
	require.NoError(t, err)
	return w
}

func TestWithdrawalLifecycle(t *testing.T) {
	svc, f := newWithdrawalFixture(t, 10000)

	w, err := svc.Request(context.Background(), "seller-1", 6000)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalPending, w.Status)

	w, err = svc.Accept(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalAccepted, w.Status)

	// Request does not reserve funds.
	assert.Equal(t, int64(10000), f.balances["seller-1"])

	w, err = svc.Complete(context.Background(), w.ID, "TR-4711", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalCompleted, w.Status)
	assert.Equal(t, "TR-4711", w.RoutingNumber)
	require.NotNil(t, w.RoutingDate)
	assert.Equal(t, int64(4000), f.balances["seller-1"])
}

func TestWithdrawalCompleteTwiceDebitsOnce(t *testing.T) {
	svc, f := newWithdrawalFixture(t, 10000)
	w := acceptedWithdrawal(t, svc, 6000)

	_, err := svc.Complete(context.Background(), w.ID, "TR-1", time.Now())
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), w.ID, "TR-2", time.Now())
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Equal(t, int64(4000), f.balances["seller-1"])
	got, err := svc.Get(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, "TR-1", got.RoutingNumber)
}

func TestWithdrawalCompleteFromPendingRejected(t *testing.T) {
	svc, f := newWithdrawalFixture(t, 10000)

	w, err := svc.Request(context.Background(), "seller-1", 6000)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), w.ID, "TR-1", time.Now())
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, int64(10000), f.balances["seller-1"])

	got, err := svc.Get(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalPending, got.Status)
}

func TestWithdrawalOverdraftLeavesStatusAccepted(t *testing.T) {
	svc, f := newWithdrawalFixture(t, 10000)
	w := acceptedWithdrawal(t, svc, 6000)

	// Balance drains between acceptance and completion.
	f.mu.Lock()
	f.balances["seller-1"] = 1000
	f.mu.Unlock()

	_, err := svc.Complete(context.Background(), w.ID, "TR-1", time.Now())
	assert.ErrorIs(t, err, ErrInvalidState)

	got, err := svc.Get(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalAccepted, got.Status)
	assert.Equal(t, int64(1000), f.balances["seller-1"])
}

func TestWithdrawalCompleteRequiresRoutingNumber(t *testing.T) {
	svc, _ := newWithdrawalFixture(t, 10000)
	w := acceptedWithdrawal(t, svc, 6000)

	_, err := svc.Complete(context.Background(), w.ID, "   ", time.Now())
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.Get(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalAccepted, got.Status)
}

func TestWithdrawalRejectReleasesNothing(t *testing.T) {
	svc, f := newWithdrawalFixture(t, 10000)

	w, err := svc.Request(context.Background(), "seller-1", 6000)
	require.NoError(t, err)

	w, err = svc.Reject(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalRejected, w.Status)
	assert.Equal(t, int64(10000), f.balances["seller-1"])

	// A rejected withdrawal is terminal.
	_, err = svc.Accept(context.Background(), w.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.Complete(context.Background(), w.ID, "TR-1", time.Now())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestWithdrawalRequestValidation(t *testing.T) {
	svc, _ := newWithdrawalFixture(t, 5000)

	_, err := svc.Request(context.Background(), "seller-1", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Request(context.Background(), "seller-1", -100)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Request(context.Background(), "seller-1", 6000)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestWithdrawalUnknownID(t *testing.T) {
	svc, _ := newWithdrawalFixture(t, 10000)

	_, err := svc.Accept(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Complete(context.Background(), "no-such-id", "TR-1", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithdrawalCompleteSucceedsWhenNotificationSinkDown(t *testing.T) {
	f := newFakeStore()
	f.balances["seller-1"] = 10000
	svc := NewWithdrawalService(fakeWithdrawals{f}, fakeBalances{f}, failingOutbox{fakeOutbox{f}}, fakeAudit{f})

	w := acceptedWithdrawal(t, svc, 6000)

	// A dead sink is logged and ignored; the settlement itself must land.
	w, err := svc.Complete(context.Background(), w.ID, "TR-4711", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalCompleted, w.Status)
	assert.Equal(t, int64(4000), f.balances["seller-1"])
	assert.Empty(t, f.events)
}

func TestWithdrawalConcurrentCompleteDebitsOnce(t *testing.T) {
	svc, f := newWithdrawalFixture(t, 10000)
	w := acceptedWithdrawal(t, svc, 6000)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Complete(context.Background(), w.ID, "TR-1", time.Now())
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
	assert.Equal(t, int64(4000), f.balances["seller-1"])
}
