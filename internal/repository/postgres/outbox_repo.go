package postgres

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type outboxRepo struct{ pool *pgxpool.Pool }

func (r *outboxRepo) Enqueue(ctx context.Context, e models.OutboxEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO outbox(id, topic, payload) VALUES($1,$2,$3)`,
		e.ID, e.Topic, e.Payload,
	)
	return mapErr(err)
}

func (r *outboxRepo) FetchPending(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, topic, payload, status, created_at, dispatched_at
		   FROM outbox
		  WHERE status=$1
		  ORDER BY created_at
		  LIMIT $2`,
		models.OutboxPending, limit,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.OutboxEvent
	for rows.Next() {
		var e models.OutboxEvent
		if err := rows.Scan(&e.ID, &e.Topic, &e.Payload, &e.Status, &e.CreatedAt, &e.DispatchedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *outboxRepo) MarkDispatched(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox SET status=$2, dispatched_at=now() WHERE id=$1`,
		id, models.OutboxDispatched,
	)
	return mapErr(err)
}

func (r *outboxRepo) MarkFailed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox SET status=$2 WHERE id=$1`,
		id, models.OutboxFailed,
	)
	return mapErr(err)
}
