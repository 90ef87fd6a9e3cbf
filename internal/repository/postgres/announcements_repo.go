package postgres

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type announcementsRepo struct{ pool *pgxpool.Pool }

func (r *announcementsRepo) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO announcements(id, author_id, title, body)
		 VALUES($1,$2,$3,$4)
		 RETURNING created_at`,
		a.ID, a.AuthorID, a.Title, a.Body,
	).Scan(&a.CreatedAt)
	if err != nil {
		return models.Announcement{}, mapErr(err)
	}
	return a, nil
}

func (r *announcementsRepo) List(ctx context.Context, limit, offset int) ([]models.Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, author_id, title, body, created_at
		   FROM announcements
		  ORDER BY created_at DESC
		  LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.AuthorID, &a.Title, &a.Body, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
