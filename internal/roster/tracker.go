package roster

import "fmt"

// Cell values that count toward tracker totals. Anything else (empty cells,
// "Late", typos) counts toward neither total.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// SummarizeToday projects each student's cell under the targetDate column.
// ErrNoAttendanceToday is returned when the header carries no column for
// targetDate, i.e. nobody has marked attendance yet.
func SummarizeToday(header []string, rows [][]string, targetDate string) ([]DayStatus, error) {
	dateIndex := -1
	for i, h := range header {
		if h == targetDate {
			dateIndex = i
			break
		}
	}
	if dateIndex == -1 {
		return nil, ErrNoAttendanceToday
	}
	out := make([]DayStatus, 0, len(rows))
	for _, row := range rows {
		out = append(out, DayStatus{
			RollNumber:  cell(row, 0),
			StudentName: cell(row, 1),
			Status:      cell(row, dateIndex),
		})
	}
	return out, nil
}

// BuildTracker counts Present/Absent cells per student and sums them
// class-wide. Totals are plain sums, no weighting.
func BuildTracker(rows [][]string) ([]TrackerEntry, TrackerSummary) {
	entries := make([]TrackerEntry, 0, len(rows))
	summary := TrackerSummary{TotalStudents: len(rows)}
	for _, row := range rows {
		present, absent := 0, 0
		for _, status := range tailCells(row) {
			switch status {
			case StatusPresent:
				present++
			case StatusAbsent:
				absent++
			}
		}
		entries = append(entries, TrackerEntry{
			RollNumber:           cell(row, 0),
			StudentName:          cell(row, 1),
			Section:              cell(row, 3),
			TotalPresent:         present,
			TotalAbsent:          absent,
			AttendancePercentage: percentage(present, absent),
		})
		summary.TotalPresent += present
		summary.TotalAbsent += absent
	}
	return entries, summary
}

// percentage short-circuits the zero-denominator case so an unmarked roster
// never divides by zero.
func percentage(present, absent int) string {
	total := present + absent
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", float64(present)/float64(total)*100)
}
