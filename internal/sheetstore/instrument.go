package sheetstore

import (
	"context"
	"time"

	"github.com/lohith114/Admin-attendance/internal/metrics"
)

// Instrument wraps a RowStore so every call reports its latency.
func Instrument(next RowStore) RowStore {
	return &instrumented{next: next}
}

type instrumented struct {
	next RowStore
}

func (s *instrumented) GetRange(ctx context.Context, sheet, rng string) ([][]string, error) {
	defer observe("get", time.Now())
	return s.next.GetRange(ctx, sheet, rng)
}

func (s *instrumented) AppendRows(ctx context.Context, sheet, rng string, rows [][]string) error {
	defer observe("append", time.Now())
	return s.next.AppendRows(ctx, sheet, rng, rows)
}

func (s *instrumented) UpdateRange(ctx context.Context, sheet, rng string, rows [][]string) error {
	defer observe("update", time.Now())
	return s.next.UpdateRange(ctx, sheet, rng, rows)
}

func (s *instrumented) ClearRange(ctx context.Context, sheet, rng string) error {
	defer observe("clear", time.Now())
	return s.next.ClearRange(ctx, sheet, rng)
}

func (s *instrumented) AddSheet(ctx context.Context, title string) error {
	defer observe("addSheet", time.Now())
	return s.next.AddSheet(ctx, title)
}

func (s *instrumented) DeleteSheet(ctx context.Context, sheetID int64) error {
	defer observe("deleteSheet", time.Now())
	return s.next.DeleteSheet(ctx, sheetID)
}

func (s *instrumented) SheetID(ctx context.Context, title string) (int64, error) {
	defer observe("sheetID", time.Now())
	return s.next.SheetID(ctx, title)
}

func observe(op string, start time.Time) {
	metrics.ObserveStoreCall(op, time.Since(start))
}
