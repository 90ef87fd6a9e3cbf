package postgres

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type notesRepo struct{ pool *pgxpool.Pool }

const noteCols = `id, owner_id, title, description, price, cover_url, file_url, downloads, created_at, updated_at`

func scanNote(row pgx.Row) (models.Note, error) {
	var n models.Note
	err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Description, &n.Price,
		&n.CoverURL, &n.FileURL, &n.Downloads, &n.CreatedAt, &n.UpdatedAt)
	return n, mapErr(err)
}

func (r *notesRepo) Create(ctx context.Context, n models.Note) (models.Note, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return scanNote(r.pool.QueryRow(ctx,
		`INSERT INTO notes(id, owner_id, title, description, price, cover_url, file_url)
		 VALUES($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+noteCols,
		n.ID, n.OwnerID, n.Title, n.Description, n.Price, n.CoverURL, n.FileURL,
	))
}

func (r *notesRepo) GetByID(ctx context.Context, id string) (models.Note, error) {
	return scanNote(r.pool.QueryRow(ctx, `SELECT `+noteCols+` FROM notes WHERE id=$1`, id))
}

func (r *notesRepo) List(ctx context.Context, limit, offset int) ([]models.Note, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+noteCols+` FROM notes ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (r *notesRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Note, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+noteCols+` FROM notes WHERE owner_id=$1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

func collectNotes(rows pgx.Rows) ([]models.Note, error) {
	var out []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notesRepo) Update(ctx context.Context, n models.Note) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notes SET title=$2, description=$3, price=$4, cover_url=$5, file_url=$6, updated_at=now()
		  WHERE id=$1`,
		n.ID, n.Title, n.Description, n.Price, n.CoverURL, n.FileURL,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}

func (r *notesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id=$1`, id)
	return mapErr(err)
}
