package sheetstore

import (
	"context"
	"errors"
)

// ErrSheetNotFound reports that no sheet with the requested title exists in
// the spreadsheet.
var ErrSheetNotFound = errors.New("sheet not found")

// RowStore is the adapter over a tabular store addressed by sheet title plus
// an A1-style range. Cells are strings; short or sparse rows are allowed.
// Every call is a network round-trip and failures propagate to the caller
// without retries.
type RowStore interface {
	// GetRange returns the rows inside the range. Trailing empty rows and
	// trailing empty cells are omitted, matching the backing store.
	GetRange(ctx context.Context, sheet, rng string) ([][]string, error)
	// AppendRows adds rows after the last row of the table anchored at rng.
	AppendRows(ctx context.Context, sheet, rng string, rows [][]string) error
	// UpdateRange overwrites cells starting at the range's top-left corner.
	UpdateRange(ctx context.Context, sheet, rng string, rows [][]string) error
	// ClearRange blanks every cell in the range.
	ClearRange(ctx context.Context, sheet, rng string) error
	// AddSheet creates a tab with the exact title; duplicates fail.
	AddSheet(ctx context.Context, title string) error
	// DeleteSheet removes the tab with the given store identifier.
	DeleteSheet(ctx context.Context, sheetID int64) error
	// SheetID resolves a title to its identifier, or ErrSheetNotFound.
	SheetID(ctx context.Context, title string) (int64, error)
}
