package postgres

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type purchasesRepo struct{ pool *pgxpool.Pool }

// Settle commits the whole purchase in one serializable transaction:
// snapshot row, sale record, download counter, seller credit and outbox
// events either all land or none do. The (note_id, user_id) unique index on
// purchased_notes rejects a second settle for the same pair, so retries and
// concurrent duplicates surface as ErrConflict without touching balances.
func (r *purchasesRepo) Settle(ctx context.Context, p repo.SettleParams) (models.Sale, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return models.Sale{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sale := models.Sale{
		ID:         uuid.NewString(),
		NoteID:     p.NoteID,
		SellerID:   p.SellerID,
		BuyerID:    p.BuyerID,
		Amount:     p.Payout,
		Commission: p.Commission,
		InvoiceID:  p.InvoiceID,
	}

	// The idempotency guard goes first so a duplicate fails before any
	// other write.
	if _, err := tx.Exec(ctx,
		`INSERT INTO purchased_notes(id, note_id, user_id, sale_id, title, price, cover_url, file_url)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		uuid.NewString(), p.NoteID, p.BuyerID, sale.ID, p.Title, p.Price, p.CoverURL, p.FileURL,
	); err != nil {
		return models.Sale{}, mapErr(err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO sales(id, note_id, seller_id, buyer_id, amount, commission, invoice_id)
		 VALUES($1,$2,$3,$4,$5,$6,$7)
		 RETURNING created_at`,
		sale.ID, sale.NoteID, sale.SellerID, sale.BuyerID, sale.Amount, sale.Commission, sale.InvoiceID,
	).Scan(&sale.CreatedAt)
	if err != nil {
		return models.Sale{}, mapErr(err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE notes SET downloads = downloads + 1, updated_at = now() WHERE id=$1`,
		p.NoteID,
	); err != nil {
		return models.Sale{}, mapErr(err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO balances(user_id, amount, last_updated_at)
		 VALUES($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET amount = balances.amount + EXCLUDED.amount, last_updated_at = now()`,
		p.SellerID, p.Payout,
	); err != nil {
		return models.Sale{}, mapErr(err)
	}

	for _, e := range p.Events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO outbox(id, topic, payload) VALUES($1,$2,$3)`,
			e.ID, e.Topic, e.Payload,
		); err != nil {
			return models.Sale{}, mapErr(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Sale{}, mapErr(err)
	}
	return sale, nil
}

func (r *purchasesRepo) ListPurchased(ctx context.Context, userID string) ([]models.PurchasedNote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, note_id, user_id, sale_id, title, price, cover_url, file_url, created_at
		   FROM purchased_notes
		  WHERE user_id=$1
		  ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.PurchasedNote
	for rows.Next() {
		var p models.PurchasedNote
		if err := rows.Scan(&p.ID, &p.NoteID, &p.UserID, &p.SaleID, &p.Title, &p.Price, &p.CoverURL, &p.FileURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *purchasesRepo) HasPurchased(ctx context.Context, noteID, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM purchased_notes WHERE note_id=$1 AND user_id=$2)`,
		noteID, userID,
	).Scan(&exists)
	return exists, mapErr(err)
}
