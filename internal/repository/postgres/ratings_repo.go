package postgres

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ratingsRepo struct{ pool *pgxpool.Pool }

func (r *ratingsRepo) Create(ctx context.Context, cr models.CustomerRating) (models.CustomerRating, error) {
	if cr.ID == "" {
		cr.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO customer_ratings(id, user_id, rater_id, rating, comment)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING created_at`,
		cr.ID, cr.UserID, cr.RaterID, cr.Rating, cr.Comment,
	).Scan(&cr.CreatedAt)
	if err != nil {
		return models.CustomerRating{}, mapErr(err)
	}
	return cr, nil
}

func (r *ratingsRepo) ListForUser(ctx context.Context, userID string) ([]models.CustomerRating, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, rater_id, rating, comment, created_at
		   FROM customer_ratings
		  WHERE user_id=$1
		  ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.CustomerRating
	for rows.Next() {
		var cr models.CustomerRating
		if err := rows.Scan(&cr.ID, &cr.UserID, &cr.RaterID, &cr.Rating, &cr.Comment, &cr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}
