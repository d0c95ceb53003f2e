package sheetstore

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process RowStore for tests. It honours the same A1 ranges
// as the Google client so handlers run against it unchanged.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	order  []string
	sheets map[string]*memSheet

	failOp  string
	failErr error
}

type memSheet struct {
	id   int64
	rows [][]string
}

// NewMemory creates a store with the given empty sheets.
func NewMemory(titles ...string) *Memory {
	m := &Memory{sheets: make(map[string]*memSheet), nextID: 1}
	for _, t := range titles {
		m.addLocked(t)
	}
	return m
}

// Seed replaces a sheet's rows, creating the sheet when absent.
func (m *Memory) Seed(title string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sh, ok := m.sheets[title]
	if !ok {
		sh = m.addLocked(title)
	}
	sh.rows = copyRows(rows)
}

// Rows returns a deep copy of a sheet's raw grid.
func (m *Memory) Rows(title string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	sh, ok := m.sheets[title]
	if !ok {
		return nil
	}
	return copyRows(sh.rows)
}

// FailNext makes the next call of the named operation ("get", "append",
// "update", "clear", "addSheet", "deleteSheet", "sheetID") return err.
func (m *Memory) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOp, m.failErr = op, err
}

func (m *Memory) GetRange(ctx context.Context, sheet, rng string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("get"); err != nil {
		return nil, err
	}
	sh, ok := m.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("get %s!%s: unknown sheet", sheet, rng)
	}
	sp, err := parseSpan(rng)
	if err != nil {
		return nil, err
	}
	lastRow := len(sh.rows)
	if sp.endRow != 0 && sp.endRow < lastRow {
		lastRow = sp.endRow
	}
	var out [][]string
	for r := sp.startRow; r <= lastRow; r++ {
		row := sh.rows[r-1]
		lastCol := len(row)
		if sp.endCol != 0 && sp.endCol < lastCol {
			lastCol = sp.endCol
		}
		var cells []string
		if sp.startCol <= lastCol {
			cells = append([]string{}, row[sp.startCol-1:lastCol]...)
		}
		// the backing store omits trailing empty cells
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		out = append(out, cells)
	}
	// and trailing empty rows
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *Memory) AppendRows(ctx context.Context, sheet, rng string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("append"); err != nil {
		return err
	}
	sh, ok := m.sheets[sheet]
	if !ok {
		return fmt.Errorf("append %s!%s: unknown sheet", sheet, rng)
	}
	sh.rows = append(sh.rows, copyRows(rows)...)
	return nil
}

func (m *Memory) UpdateRange(ctx context.Context, sheet, rng string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("update"); err != nil {
		return err
	}
	sh, ok := m.sheets[sheet]
	if !ok {
		return fmt.Errorf("update %s!%s: unknown sheet", sheet, rng)
	}
	sp, err := parseSpan(rng)
	if err != nil {
		return err
	}
	for i, row := range rows {
		r := sp.startRow - 1 + i
		for len(sh.rows) <= r {
			sh.rows = append(sh.rows, []string{})
		}
		for j, cell := range row {
			c := sp.startCol - 1 + j
			for len(sh.rows[r]) <= c {
				sh.rows[r] = append(sh.rows[r], "")
			}
			sh.rows[r][c] = cell
		}
	}
	return nil
}

func (m *Memory) ClearRange(ctx context.Context, sheet, rng string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("clear"); err != nil {
		return err
	}
	sh, ok := m.sheets[sheet]
	if !ok {
		return fmt.Errorf("clear %s!%s: unknown sheet", sheet, rng)
	}
	sp, err := parseSpan(rng)
	if err != nil {
		return err
	}
	lastRow := len(sh.rows)
	if sp.endRow != 0 && sp.endRow < lastRow {
		lastRow = sp.endRow
	}
	for r := sp.startRow; r <= lastRow; r++ {
		row := sh.rows[r-1]
		lastCol := len(row)
		if sp.endCol != 0 && sp.endCol < lastCol {
			lastCol = sp.endCol
		}
		for c := sp.startCol; c <= lastCol; c++ {
			row[c-1] = ""
		}
	}
	return nil
}

func (m *Memory) AddSheet(ctx context.Context, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("addSheet"); err != nil {
		return err
	}
	if _, exists := m.sheets[title]; exists {
		return fmt.Errorf("add sheet %q: already exists", title)
	}
	m.addLocked(title)
	return nil
}

func (m *Memory) DeleteSheet(ctx context.Context, sheetID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("deleteSheet"); err != nil {
		return err
	}
	for title, sh := range m.sheets {
		if sh.id == sheetID {
			delete(m.sheets, title)
			for i, t := range m.order {
				if t == title {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
			return nil
		}
	}
	return fmt.Errorf("delete sheet %d: no such sheet", sheetID)
}

func (m *Memory) SheetID(ctx context.Context, title string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("sheetID"); err != nil {
		return 0, err
	}
	if sh, ok := m.sheets[title]; ok {
		return sh.id, nil
	}
	return 0, fmt.Errorf("%q: %w", title, ErrSheetNotFound)
}

func (m *Memory) addLocked(title string) *memSheet {
	sh := &memSheet{id: m.nextID}
	m.nextID++
	m.sheets[title] = sh
	m.order = append(m.order, title)
	return sh
}

func (m *Memory) injected(op string) error {
	if m.failOp == op && m.failErr != nil {
		err := m.failErr
		m.failOp, m.failErr = "", nil
		return err
	}
	return nil
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string{}, row...)
	}
	return out
}
