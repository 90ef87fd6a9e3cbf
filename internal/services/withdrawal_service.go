package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edumarket/edumarket-backend/internal/metrics"
	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/money"
	"github.com/edumarket/edumarket-backend/internal/notify"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
)

type WithdrawalService struct {
	withdrawals repo.Withdrawals
	balances    repo.Balances
	outbox      repo.Outbox
	audit       repo.AuditLogs
}

func NewWithdrawalService(w repo.Withdrawals, b repo.Balances, o repo.Outbox, a repo.AuditLogs) *WithdrawalService {
	return &WithdrawalService{withdrawals: w, balances: b, outbox: o, audit: a}
}

// Request opens a pending withdrawal. The balance check here is advisory
// early feedback only; the authoritative guard is the conditional debit at
// completion time.
func (s *WithdrawalService) Request(ctx context.Context, userID string, amount int64) (models.Withdrawal, error) {
	if amount <= 0 {
		return models.Withdrawal{}, fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}
	b, err := s.balances.GetOrCreate(ctx, userID)
	if err != nil {
		return models.Withdrawal{}, fromRepo(err)
	}
	if b.Amount < amount {
		return models.Withdrawal{}, fmt.Errorf("%w: insufficient balance", ErrInvalidState)
	}

	w, err := s.withdrawals.Create(ctx, models.Withdrawal{UserID: userID, Amount: amount})
	if err != nil {
		return models.Withdrawal{}, fromRepo(err)
	}
	s.enqueue(ctx, notify.NewEvent(userID, "Withdrawal requested",
		fmt.Sprintf("Your withdrawal of %s is pending review", money.Format(amount)),
		models.NotifyInfo))
	return w, nil
}

// Accept moves pending -> accepted.
func (s *WithdrawalService) Accept(ctx context.Context, id string) (models.Withdrawal, error) {
	w, err := s.withdrawals.Transition(ctx, id, models.WithdrawalPending, models.WithdrawalAccepted)
	if err != nil {
		return models.Withdrawal{}, s.transitionErr(err, models.WithdrawalAccepted)
	}
	s.enqueue(ctx, notify.NewEvent(w.UserID, "Withdrawal accepted",
		fmt.Sprintf("Your withdrawal of %s was accepted", money.Format(w.Amount)),
		models.NotifyWithdrawalAccepted))
	s.auditWithdrawal(ctx, w, "accepted")
	return w, nil
}

// Reject moves pending -> rejected. No balance is touched; funds were never
// reserved.
func (s *WithdrawalService) Reject(ctx context.Context, id string) (models.Withdrawal, error) {
	w, err := s.withdrawals.Transition(ctx, id, models.WithdrawalPending, models.WithdrawalRejected)
	if err != nil {
		return models.Withdrawal{}, s.transitionErr(err, models.WithdrawalRejected)
	}
	s.enqueue(ctx, notify.NewEvent(w.UserID, "Withdrawal rejected",
		fmt.Sprintf("Your withdrawal of %s was rejected", money.Format(w.Amount)),
		models.NotifyWithdrawalRejected))
	s.auditWithdrawal(ctx, w, "rejected")
	return w, nil
}

// Complete settles an accepted withdrawal and debits the balance exactly
// once. A second call, or a call on a withdrawal that never passed through
// accepted, fails with ErrInvalidState and touches nothing. An overdraft
// fails the whole settlement and the withdrawal stays accepted.
func (s *WithdrawalService) Complete(ctx context.Context, id, routingNumber string, routingDate time.Time) (models.Withdrawal, error) {
	if strings.TrimSpace(routingNumber) == "" {
		return models.Withdrawal{}, fmt.Errorf("%w: routing number required", ErrValidation)
	}
	if routingDate.IsZero() {
		routingDate = time.Now()
	}

	w, err := s.withdrawals.Complete(ctx, id, routingNumber, routingDate)
	if err != nil {
		metrics.WithdrawalsFailed.Inc()
		switch {
		case errors.Is(err, repo.ErrInvalidTransition):
			return models.Withdrawal{}, fmt.Errorf("%w: withdrawal is not accepted", ErrInvalidState)
		case errors.Is(err, repo.ErrInsufficientFunds):
			return models.Withdrawal{}, fmt.Errorf("%w: insufficient balance", ErrInvalidState)
		default:
			return models.Withdrawal{}, fromRepo(err)
		}
	}

	metrics.WithdrawalsSettled.Inc()
	s.enqueue(ctx, notify.NewEvent(w.UserID, "Withdrawal completed",
		fmt.Sprintf("Your withdrawal of %s was paid out", money.Format(w.Amount)),
		models.NotifyWithdrawalCompleted))
	s.auditWithdrawal(ctx, w, "completed")
	return w, nil
}

func (s *WithdrawalService) Get(ctx context.Context, id string) (models.Withdrawal, error) {
	w, err := s.withdrawals.GetByID(ctx, id)
	return w, fromRepo(err)
}

func (s *WithdrawalService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Withdrawal, error) {
	out, err := s.withdrawals.ListByUser(ctx, userID, limit, offset)
	return out, fromRepo(err)
}

func (s *WithdrawalService) ListAll(ctx context.Context, limit, offset int) ([]models.Withdrawal, error) {
	out, err := s.withdrawals.List(ctx, limit, offset)
	return out, fromRepo(err)
}

func (s *WithdrawalService) transitionErr(err error, to models.WithdrawalStatus) error {
	if errors.Is(err, repo.ErrInvalidTransition) {
		return fmt.Errorf("%w: withdrawal cannot move to %s", ErrInvalidState, to)
	}
	return fromRepo(err)
}

// enqueue is best-effort: a failed notification never fails the settlement.
func (s *WithdrawalService) enqueue(ctx context.Context, e models.OutboxEvent) {
	if err := s.outbox.Enqueue(ctx, e); err != nil {
		slog.Warn("outbox enqueue failed", "topic", e.Topic, "err", err)
	}
}

func (s *WithdrawalService) auditWithdrawal(ctx context.Context, w models.Withdrawal, action string) {
	if err := s.audit.Create(ctx, models.AuditLog{
		EntityType: "withdrawal",
		EntityID:   &w.ID,
		Action:     action,
		Details:    map[string]any{"user_id": w.UserID, "amount": w.Amount},
	}); err != nil {
		slog.Warn("audit write failed", "withdrawal_id", w.ID, "err", err)
	}
}
