package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lohith114/Admin-attendance/internal/sheetstore"
)

var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrNoAttendanceToday = errors.New("no attendance marked for today")
	ErrBadCredentials    = errors.New("invalid username or password")
)

// DateSource yields the calendar-date key for "today" lookups.
type DateSource interface {
	Today() string
}

// Service executes every roster operation against the injected row store.
// It keeps no state between calls; the spreadsheet is the only store, and
// every read-modify-write sequence runs without version checks, so two
// concurrent writers to the same sheet can clobber each other.
type Service struct {
	store     sheetstore.RowStore
	dates     DateSource
	userSheet string
}

// NewService wires the store and date source. userSheet defaults to "User".
func NewService(store sheetstore.RowStore, dates DateSource, userSheet string) *Service {
	if userSheet == "" {
		userSheet = "User"
	}
	return &Service{store: store, dates: dates, userSheet: userSheet}
}

// SaveStudent appends one roster row to the class sheet. Duplicate roll
// numbers are not rejected.
func (s *Service) SaveStudent(ctx context.Context, class string, st Student) error {
	if err := s.store.AppendRows(ctx, class, "A1:D1", [][]string{st.Row()}); err != nil {
		return fmt.Errorf("append student: %w", err)
	}
	return nil
}

// SearchStudent returns the first data row whose roll number matches exactly
// (no trimming on either side).
func (s *Service) SearchStudent(ctx context.Context, class, rollNumber string) (Student, error) {
	rows, err := s.store.GetRange(ctx, class, "A2:Z")
	if err != nil {
		return Student{}, fmt.Errorf("read roster: %w", err)
	}
	for _, row := range rows {
		if cell(row, 0) == rollNumber {
			return StudentFromRow(row), nil
		}
	}
	return Student{}, ErrStudentNotFound
}

// UpdateStudent replaces the matching row in place and rewrites the whole
// A2-down block. Roll numbers are compared with surrounding whitespace
// trimmed, and the stored fields are trimmed too.
func (s *Service) UpdateStudent(ctx context.Context, class string, st Student) error {
	rows, err := s.store.GetRange(ctx, class, "A2:D")
	if err != nil {
		return fmt.Errorf("read roster: %w", err)
	}
	match := -1
	for i, row := range rows {
		if strings.TrimSpace(cell(row, 0)) == strings.TrimSpace(st.RollNumber) {
			match = i
			break
		}
	}
	if match == -1 {
		return ErrStudentNotFound
	}
	rows[match] = Student{
		RollNumber:       strings.TrimSpace(st.RollNumber),
		NameOfTheStudent: strings.TrimSpace(st.NameOfTheStudent),
		FatherName:       strings.TrimSpace(st.FatherName),
		Section:          strings.TrimSpace(st.Section),
	}.Row()
	if err := s.store.UpdateRange(ctx, class, "A2", rows); err != nil {
		return fmt.Errorf("rewrite roster: %w", err)
	}
	return nil
}

// SheetRows returns a class sheet's raw header and data rows in one read.
func (s *Service) SheetRows(ctx context.Context, class string) ([]string, [][]string, error) {
	rows, err := s.store.GetRange(ctx, class, "A1:Z")
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	header, data := splitHeader(rows)
	return header, data, nil
}

// TodaySummary reports each student's status under today's date column.
func (s *Service) TodaySummary(ctx context.Context, class string) ([]DayStatus, error) {
	header, data, err := s.SheetRows(ctx, class)
	if err != nil {
		return nil, err
	}
	return SummarizeToday(header, data, s.dates.Today())
}

// Tracker computes the per-student and class-wide aggregates.
func (s *Service) Tracker(ctx context.Context, class string) ([]TrackerEntry, TrackerSummary, error) {
	_, data, err := s.SheetRows(ctx, class)
	if err != nil {
		return nil, TrackerSummary{}, err
	}
	entries, summary := BuildTracker(data)
	return entries, summary, nil
}

// FullAttendance returns every student's complete date/status run.
func (s *Service) FullAttendance(ctx context.Context, class string) ([]AttendanceRow, error) {
	header, data, err := s.SheetRows(ctx, class)
	if err != nil {
		return nil, err
	}
	return AttendanceFromRows(header, data), nil
}

// Users returns every credential row.
func (s *Service) Users(ctx context.Context) ([]Credential, error) {
	rows, err := s.store.GetRange(ctx, s.userSheet, "A2:B")
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	out := make([]Credential, 0, len(rows))
	for _, row := range rows {
		out = append(out, CredentialFromRow(row))
	}
	return out, nil
}

// UpdateUser replaces every row matching both current values with the new
// pair, then rewrites the credential block. A pair matching nothing leaves
// the rows unchanged and still succeeds. The clear and the rewrite are two
// separate store calls; a failure between them leaves the block empty.
func (s *Service) UpdateUser(ctx context.Context, current, updated Credential) error {
	creds, err := s.Users(ctx)
	if err != nil {
		return err
	}
	rewritten := make([][]string, 0, len(creds))
	for _, cred := range creds {
		if cred == current {
			cred = updated
		}
		rewritten = append(rewritten, cred.Row())
	}
	if err := s.store.ClearRange(ctx, s.userSheet, "A2:B"); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	if len(rewritten) == 0 {
		return nil
	}
	if err := s.store.UpdateRange(ctx, s.userSheet, "A2", rewritten); err != nil {
		return fmt.Errorf("rewrite users: %w", err)
	}
	return nil
}

// Login checks a credential pair against the user sheet. Exact string
// equality on both fields.
func (s *Service) Login(ctx context.Context, username, password string) error {
	creds, err := s.Users(ctx)
	if err != nil {
		return err
	}
	for _, cred := range creds {
		if cred.Username == username && cred.Password == password {
			return nil
		}
	}
	return ErrBadCredentials
}

// CreateSheet adds a class tab with the exact given name and seeds the fixed
// header row so appended students start at row 2. The store rejects
// duplicate titles.
func (s *Service) CreateSheet(ctx context.Context, name string) error {
	if err := s.store.AddSheet(ctx, name); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := s.store.UpdateRange(ctx, name, "A1", [][]string{studentHeader}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// DeleteSheet resolves the tab's id by title and deletes it. An unknown
// title surfaces sheetstore.ErrSheetNotFound instead of reaching the store
// with a bogus identifier.
func (s *Service) DeleteSheet(ctx context.Context, name string) error {
	id, err := s.store.SheetID(ctx, name)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSheet(ctx, id); err != nil {
		return fmt.Errorf("delete sheet: %w", err)
	}
	return nil
}

// Ping verifies the spreadsheet is reachable; a missing user sheet still
// proves reachability.
func (s *Service) Ping(ctx context.Context) bool {
	_, err := s.store.SheetID(ctx, s.userSheet)
	return err == nil || errors.Is(err, sheetstore.ErrSheetNotFound)
}

func splitHeader(rows [][]string) ([]string, [][]string) {
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], rows[1:]
}
