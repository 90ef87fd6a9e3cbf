package postgres

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reviewsRepo struct{ pool *pgxpool.Pool }

func (r *reviewsRepo) Create(ctx context.Context, rv models.NoteReview) (models.NoteReview, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO note_reviews(id, note_id, user_id, rating, comment)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING created_at`,
		rv.ID, rv.NoteID, rv.UserID, rv.Rating, rv.Comment,
	).Scan(&rv.CreatedAt)
	if err != nil {
		return models.NoteReview{}, mapErr(err)
	}
	return rv, nil
}

func (r *reviewsRepo) ListByNote(ctx context.Context, noteID string) ([]models.NoteReview, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, note_id, user_id, rating, comment, created_at
		   FROM note_reviews
		  WHERE note_id=$1
		  ORDER BY created_at DESC`,
		noteID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.NoteReview
	for rows.Next() {
		var rv models.NoteReview
		if err := rows.Scan(&rv.ID, &rv.NoteID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
