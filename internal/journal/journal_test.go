package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ibsession/internal/domain"
)

func TestSQLiteJournalRecordAndList(t *testing.T) {
	j, err := NewSQLiteJournal(filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("NewSQLiteJournal returned error: %v", err)
	}
	defer j.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

	recs := []domain.OrderRecord{
		{
			OrderID: 7, Account: "U123456", Symbol: "gld", SecType: "stk",
			Exchange: "SMART", PrimaryExch: "ARCA", Currency: "USD",
			OrderType: "mkt", Quantity: 200, Action: "sell",
			SubmittedAt: base,
		},
		{
			OrderID: 8, Account: "U123456", Symbol: "msft", SecType: "stk",
			Exchange: "SMART", PrimaryExch: "NASDAQ", Currency: "USD",
			OrderType: "lmt", Quantity: 50, Action: "buy",
			SubmittedAt: base.Add(time.Minute),
		},
	}
	for _, rec := range recs {
		if err := j.Record(ctx, rec); err != nil {
			t.Fatalf("Record(%d) returned error: %v", rec.OrderID, err)
		}
	}

	got, err := j.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d records, want 2", len(got))
	}
	if got[0].OrderID != 7 || got[1].OrderID != 8 {
		t.Errorf("List order ids = %d, %d, want 7, 8", got[0].OrderID, got[1].OrderID)
	}
	if !got[0].SubmittedAt.Equal(recs[0].SubmittedAt) {
		t.Errorf("SubmittedAt = %v, want %v", got[0].SubmittedAt, recs[0].SubmittedAt)
	}
	got[0].SubmittedAt = recs[0].SubmittedAt
	if got[0] != recs[0] {
		t.Errorf("round-tripped record = %+v, want %+v", got[0], recs[0])
	}
}

func TestSQLiteJournalEmptyList(t *testing.T) {
	j, err := NewSQLiteJournal(filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("NewSQLiteJournal returned error: %v", err)
	}
	defer j.Close()

	got, err := j.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List on empty journal returned %d records", len(got))
	}
}

func TestParquetJournalAppendAndReadDay(t *testing.T) {
	j := NewParquetJournal(t.TempDir())
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	ticks := []domain.Tick{
		{TickerID: 1, Field: "LAST", Price: 150.25, Size: 100, Timestamp: day.Add(10 * time.Hour)},
		{TickerID: 1, Field: "LAST", Price: 150.30, Size: 40, Timestamp: day.Add(11 * time.Hour)},
	}
	if err := j.Append(ctx, ticks); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	// A second append on the same day must merge, not clobber.
	more := []domain.Tick{
		{TickerID: 1, Field: "BID", Price: 150.20, Size: 10, Timestamp: day.Add(12 * time.Hour)},
	}
	if err := j.Append(ctx, more); err != nil {
		t.Fatalf("second Append returned error: %v", err)
	}

	got, err := j.ReadDay(ctx, day)
	if err != nil {
		t.Fatalf("ReadDay returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ReadDay returned %d ticks, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.Before(got[i-1].Timestamp) {
			t.Errorf("ticks out of order at %d: %v before %v", i, got[i].Timestamp, got[i-1].Timestamp)
		}
	}
	if got[0].Price != 150.25 || got[0].Field != "LAST" {
		t.Errorf("first tick = %+v, want price 150.25 field LAST", got[0])
	}
}

func TestParquetJournalReadMissingDay(t *testing.T) {
	j := NewParquetJournal(t.TempDir())

	got, err := j.ReadDay(context.Background(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ReadDay on missing day returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadDay on missing day returned %d ticks", len(got))
	}
}
