package journal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"

	"ibsession/internal/domain"
)

// Compile-time interface check.
var _ TickStore = (*ParquetJournal)(nil)

// ParquetJournal implements TickStore using one Parquet file per day on
// disk. Layout: <DataDir>/ticks/<YYYY-MM-DD>.parquet
type ParquetJournal struct {
	DataDir string
}

// NewParquetJournal creates a ParquetJournal rooted at the given data
// directory.
func NewParquetJournal(dataDir string) *ParquetJournal {
	return &ParquetJournal{DataDir: dataDir}
}

// TickRecord is the Parquet schema for recorded ticks.
type TickRecord struct {
	TickerID  int32   `parquet:"ticker_id"`
	Field     string  `parquet:"field"`
	Price     float64 `parquet:"price"`
	Size      int64   `parquet:"size"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
}

// Append persists ticks, merging them into the day files they belong to.
func (j *ParquetJournal) Append(_ context.Context, ticks []domain.Tick) error {
	if len(ticks) == 0 {
		return nil
	}

	groups := make(map[string][]TickRecord)
	for _, t := range ticks {
		day := t.Timestamp.UTC().Format("2006-01-02")
		groups[day] = append(groups[day], TickRecord{
			TickerID:  int32(t.TickerID),
			Field:     t.Field,
			Price:     t.Price,
			Size:      t.Size,
			Timestamp: t.Timestamp.UnixMilli(),
		})
	}

	for day, records := range groups {
		path := j.tickPath(day)

		// Read existing records to merge; a missing file is an empty day.
		existing, _ := readParquetFile[TickRecord](path)
		merged := append(existing, records...)
		sort.Slice(merged, func(i, k int) bool {
			return merged[i].Timestamp < merged[k].Timestamp
		})

		if err := writeParquetFile(path, merged); err != nil {
			return fmt.Errorf("writing ticks for %s: %w", day, err)
		}
	}
	return nil
}

// ReadDay returns all ticks recorded on the given day, oldest first.
func (j *ParquetJournal) ReadDay(_ context.Context, day time.Time) ([]domain.Tick, error) {
	records, err := readParquetFile[TickRecord](j.tickPath(day.UTC().Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	ticks := make([]domain.Tick, 0, len(records))
	for _, r := range records {
		ticks = append(ticks, domain.Tick{
			TickerID:  int(r.TickerID),
			Field:     r.Field,
			Price:     r.Price,
			Size:      r.Size,
			Timestamp: time.UnixMilli(r.Timestamp).UTC(),
		})
	}
	return ticks, nil
}

func (j *ParquetJournal) tickPath(day string) string {
	return filepath.Join(j.DataDir, "ticks", day+".parquet")
}

// ---------------------------------------------------------------------------
// Parquet file helpers
// ---------------------------------------------------------------------------

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
