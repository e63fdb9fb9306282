// Package postgres keeps a local archive of confirmed receipts, for kiosk
// installs that want history to survive the terminal. Enabled only when
// DATABASE_URL is set; the client works fine without it.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/traillend-client/internal/domain/reservation"
)

type ReceiptArchive struct {
	pool *pgxpool.Pool
}

func OpenArchive(ctx context.Context, databaseURL string) (*ReceiptArchive, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &ReceiptArchive{pool: pool}, nil
}

func (a *ReceiptArchive) Close() { a.pool.Close() }

func (a *ReceiptArchive) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return a.pool.Ping(ctx)
}

func (a *ReceiptArchive) EnsureSchema(ctx context.Context) error {
	_, err := a.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS receipts (
    transaction_id TEXT PRIMARY KEY,
    item_id        BIGINT NOT NULL,
    item_name      TEXT NOT NULL,
    department     TEXT NOT NULL DEFAULT '',
    start_at       TIMESTAMP,
    end_at         TIMESTAMP,
    fee            TEXT NOT NULL DEFAULT '',
    submitted_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

// Save records a confirmed receipt. Saving the same transaction twice
// overwrites rather than duplicating, so a reprinted receipt is harmless.
func (a *ReceiptArchive) Save(ctx context.Context, r reservation.Receipt) error {
	var startAt, endAt *time.Time
	if !r.Window.IsZero() {
		startAt, endAt = &r.Window.Start, &r.Window.End
	}
	_, err := a.pool.Exec(ctx, `
INSERT INTO receipts(transaction_id, item_id, item_name, department, start_at, end_at, fee)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (transaction_id) DO UPDATE
SET item_id=$2, item_name=$3, department=$4, start_at=$5, end_at=$6, fee=$7`,
		r.TransactionID, r.Item.ID, r.Item.Name, r.Item.Department, startAt, endAt, r.Fee)
	return err
}

// ArchivedReceipt is one stored row, times already local wall-clock.
type ArchivedReceipt struct {
	TransactionID string
	ItemID        int64
	ItemName      string
	Department    string
	StartAt       *time.Time
	EndAt         *time.Time
	Fee           string
	SubmittedAt   time.Time
}

func (a *ReceiptArchive) ListRecent(ctx context.Context, limit int) ([]ArchivedReceipt, error) {
	rows, err := a.pool.Query(ctx, `
SELECT transaction_id, item_id, item_name, department, start_at, end_at, fee, submitted_at
FROM receipts
ORDER BY submitted_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchivedReceipt
	for rows.Next() {
		var r ArchivedReceipt
		if err := rows.Scan(&r.TransactionID, &r.ItemID, &r.ItemName, &r.Department,
			&r.StartAt, &r.EndAt, &r.Fee, &r.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
