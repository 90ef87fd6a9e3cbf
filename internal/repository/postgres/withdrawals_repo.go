package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type withdrawalsRepo struct{ pool *pgxpool.Pool }

const withdrawalCols = `id, user_id, amount, status, routing_number, routing_date, created_at, updated_at`

func scanWithdrawal(row pgx.Row) (models.Withdrawal, error) {
	var w models.Withdrawal
	err := row.Scan(&w.ID, &w.UserID, &w.Amount, &w.Status, &w.RoutingNumber, &w.RoutingDate, &w.CreatedAt, &w.UpdatedAt)
	return w, mapErr(err)
}

func (r *withdrawalsRepo) Create(ctx context.Context, w models.Withdrawal) (models.Withdrawal, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return scanWithdrawal(r.pool.QueryRow(ctx,
		`INSERT INTO withdrawals(id, user_id, amount, status)
		 VALUES($1,$2,$3,$4)
		 RETURNING `+withdrawalCols,
		w.ID, w.UserID, w.Amount, models.WithdrawalPending,
	))
}

func (r *withdrawalsRepo) GetByID(ctx context.Context, id string) (models.Withdrawal, error) {
	return scanWithdrawal(r.pool.QueryRow(ctx,
		`SELECT `+withdrawalCols+` FROM withdrawals WHERE id=$1`, id))
}

func (r *withdrawalsRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Withdrawal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+withdrawalCols+` FROM withdrawals
		  WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	return collectWithdrawals(rows)
}

func (r *withdrawalsRepo) List(ctx context.Context, limit, offset int) ([]models.Withdrawal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+withdrawalCols+` FROM withdrawals
		  ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	return collectWithdrawals(rows)
}

func collectWithdrawals(rows pgx.Rows) ([]models.Withdrawal, error) {
	var out []models.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Transition flips status only if the row still holds the expected one, so
// two racing admins cannot both win.
func (r *withdrawalsRepo) Transition(ctx context.Context, id string, from, to models.WithdrawalStatus) (models.Withdrawal, error) {
	if !from.CanTransition(to) {
		return models.Withdrawal{}, repo.ErrInvalidTransition
	}
	w, err := scanWithdrawal(r.pool.QueryRow(ctx,
		`UPDATE withdrawals SET status=$3, updated_at=now()
		  WHERE id=$1 AND status=$2
		  RETURNING `+withdrawalCols,
		id, from, to,
	))
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return models.Withdrawal{}, err
	}
	// Zero rows: either the id is unknown or the status moved under us.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return models.Withdrawal{}, getErr
	}
	return models.Withdrawal{}, repo.ErrInvalidTransition
}

// Complete settles an accepted withdrawal: status flip, routing metadata and
// the balance debit happen in one transaction. The debit is conditional on
// amount >= withdrawal.amount, so an overdraft rolls everything back and the
// withdrawal stays accepted. Calling Complete twice debits exactly once —
// the second call finds status != 'accepted' and fails before any write.
func (r *withdrawalsRepo) Complete(ctx context.Context, id, routingNumber string, routingDate time.Time) (models.Withdrawal, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return models.Withdrawal{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	w, err := scanWithdrawal(tx.QueryRow(ctx,
		`UPDATE withdrawals
		    SET status=$2, routing_number=$3, routing_date=$4, updated_at=now()
		  WHERE id=$1 AND status=$5
		  RETURNING `+withdrawalCols,
		id, models.WithdrawalCompleted, routingNumber, routingDate, models.WithdrawalAccepted,
	))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return models.Withdrawal{}, err
		}
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return models.Withdrawal{}, getErr
		}
		return models.Withdrawal{}, repo.ErrInvalidTransition
	}

	tag, err := tx.Exec(ctx,
		`UPDATE balances
		    SET amount = amount - $2, last_updated_at = now()
		  WHERE user_id=$1 AND amount >= $2`,
		w.UserID, w.Amount,
	)
	if err != nil {
		return models.Withdrawal{}, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Withdrawal{}, repo.ErrInsufficientFunds
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Withdrawal{}, mapErr(err)
	}
	return w, nil
}
