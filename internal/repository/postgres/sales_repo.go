package postgres

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type salesRepo struct{ pool *pgxpool.Pool }

const saleCols = `id, note_id, seller_id, buyer_id, amount, commission, invoice_id, created_at`

func (r *salesRepo) GetByID(ctx context.Context, id string) (models.Sale, error) {
	var s models.Sale
	err := r.pool.QueryRow(ctx,
		`SELECT `+saleCols+` FROM sales WHERE id=$1`, id,
	).Scan(&s.ID, &s.NoteID, &s.SellerID, &s.BuyerID, &s.Amount, &s.Commission, &s.InvoiceID, &s.CreatedAt)
	return s, mapErr(err)
}

func (r *salesRepo) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]models.Sale, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+saleCols+` FROM sales
		  WHERE seller_id=$1
		  ORDER BY created_at DESC
		  LIMIT $2 OFFSET $3`,
		sellerID, limit, offset,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.NoteID, &s.SellerID, &s.BuyerID, &s.Amount, &s.Commission, &s.InvoiceID, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
