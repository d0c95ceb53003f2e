package sheetstore

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Google serves one spreadsheet through the Sheets v4 API. Writes use RAW
// value input so cell contents stay exactly the strings the service sends.
type Google struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewGoogle builds a client from a service-account credentials file.
func NewGoogle(ctx context.Context, credentialsFile, spreadsheetID string) (*Google, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &Google{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (g *Google) GetRange(ctx context.Context, sheet, rng string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, sheet+"!"+rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get %s!%s: %w", sheet, rng, err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		out = append(out, cells)
	}
	return out, nil
}

func (g *Google) AppendRows(ctx context.Context, sheet, rng string, rows [][]string) error {
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, sheet+"!"+rng, valueRange(rows)).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append %s!%s: %w", sheet, rng, err)
	}
	return nil
}

func (g *Google) UpdateRange(ctx context.Context, sheet, rng string, rows [][]string) error {
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, sheet+"!"+rng, valueRange(rows)).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s!%s: %w", sheet, rng, err)
	}
	return nil
}

func (g *Google) ClearRange(ctx context.Context, sheet, rng string) error {
	_, err := g.svc.Spreadsheets.Values.Clear(g.spreadsheetID, sheet+"!"+rng, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s!%s: %w", sheet, rng, err)
	}
	return nil
}

func (g *Google) AddSheet(ctx context.Context, title string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %q: %w", title, err)
	}
	return nil
}

func (g *Google) DeleteSheet(ctx context.Context, sheetID int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheetID},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete sheet %d: %w", sheetID, err)
	}
	return nil
}

func (g *Google) SheetID(ctx context.Context, title string) (int64, error) {
	meta, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("list sheets: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", title, ErrSheetNotFound)
}

func valueRange(rows [][]string) *sheets.ValueRange {
	vals := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		vals[i] = cells
	}
	return &sheets.ValueRange{Values: vals}
}
