// Package journal persists the adapter's outgoing orders and incoming
// market-data ticks: orders to SQLite, ticks to Parquet files on disk.
package journal

import (
	"context"
	"time"

	"ibsession/internal/domain"
)

// OrderStore records submitted orders.
type OrderStore interface {
	// Record inserts the trace of one submitted order.
	Record(ctx context.Context, rec domain.OrderRecord) error

	// List returns all recorded orders, oldest first.
	List(ctx context.Context) ([]domain.OrderRecord, error)
}

// TickStore records market-data ticks.
type TickStore interface {
	// Append persists a batch of ticks.
	Append(ctx context.Context, ticks []domain.Tick) error

	// ReadDay returns all ticks recorded on the given day.
	ReadDay(ctx context.Context, day time.Time) ([]domain.Tick, error)
}
