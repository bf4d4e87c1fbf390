package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ibsession/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ OrderStore = (*SQLiteJournal)(nil)

// SQLiteJournal implements OrderStore backed by a SQLite database.
type SQLiteJournal struct {
	db *sql.DB
}

const ordersSchema = `
CREATE TABLE IF NOT EXISTS orders (
	order_id     INTEGER NOT NULL,
	account      TEXT NOT NULL,
	symbol       TEXT NOT NULL,
	sec_type     TEXT NOT NULL,
	exchange     TEXT NOT NULL,
	primary_exch TEXT NOT NULL,
	currency     TEXT NOT NULL,
	order_type   TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	action       TEXT NOT NULL,
	submitted_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_submitted_at ON orders(submitted_at);
`

// NewSQLiteJournal opens (or creates) a SQLite database at dbPath and
// ensures the orders table exists.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(ordersSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating orders table: %w", err)
	}
	return &SQLiteJournal{db: db}, nil
}

// Close closes the underlying database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Record inserts the trace of one submitted order.
func (j *SQLiteJournal) Record(ctx context.Context, rec domain.OrderRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO orders (order_id, account, symbol, sec_type, exchange,
			primary_exch, currency, order_type, quantity, action, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.OrderID, rec.Account, rec.Symbol, rec.SecType, rec.Exchange,
		rec.PrimaryExch, rec.Currency, rec.OrderType, rec.Quantity, rec.Action,
		rec.SubmittedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting order %d: %w", rec.OrderID, err)
	}
	return nil
}

// List returns all recorded orders, oldest first.
func (j *SQLiteJournal) List(ctx context.Context) ([]domain.OrderRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT order_id, account, symbol, sec_type, exchange, primary_exch,
			currency, order_type, quantity, action, submitted_at
		FROM orders ORDER BY submitted_at`)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var recs []domain.OrderRecord
	for rows.Next() {
		var rec domain.OrderRecord
		var submitted string
		if err := rows.Scan(&rec.OrderID, &rec.Account, &rec.Symbol,
			&rec.SecType, &rec.Exchange, &rec.PrimaryExch, &rec.Currency,
			&rec.OrderType, &rec.Quantity, &rec.Action, &submitted); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, submitted)
		if err != nil {
			return nil, fmt.Errorf("parsing submitted_at %q: %w", submitted, err)
		}
		rec.SubmittedAt = ts
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
