package roster

import (
	"reflect"
	"testing"
)

func TestStudentFromRowPadsShortRows(t *testing.T) {
	got := StudentFromRow([]string{"7", "Asha"})
	want := Student{RollNumber: "7", NameOfTheStudent: "Asha"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestStudentRowRoundTrip(t *testing.T) {
	st := Student{RollNumber: "1", NameOfTheStudent: "A", FatherName: "B", Section: "C"}
	if got := StudentFromRow(st.Row()); got != st {
		t.Fatalf("round trip changed record: %+v", got)
	}
}

func TestCredentialFromRow(t *testing.T) {
	if got := CredentialFromRow([]string{"alice"}); got != (Credential{Username: "alice"}) {
		t.Fatalf("short row: %+v", got)
	}
	if got := CredentialFromRow([]string{"alice", "pw"}); got != (Credential{Username: "alice", Password: "pw"}) {
		t.Fatalf("full row: %+v", got)
	}
}

func TestAttendanceFromRows(t *testing.T) {
	header := []string{"RollNumber", "NameOfTheStudent", "FatherName", "Section", "2026-08-30", "2026-08-31"}
	rows := [][]string{
		{"1", "Asha", "Ravi", "A", "Present", "Absent"},
		{"2", "Vikram", "Mohan", "A", "Present"},
		{"3", "Kiran", "Suresh", "B"},
	}
	got := AttendanceFromRows(header, rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	wantDates := []string{"2026-08-30", "2026-08-31"}
	if !reflect.DeepEqual(got[0].Dates, wantDates) {
		t.Fatalf("dates %v, want %v", got[0].Dates, wantDates)
	}
	if !reflect.DeepEqual(got[1].Statuses, []string{"Present"}) {
		t.Fatalf("short row statuses %v", got[1].Statuses)
	}
	if got[2].Statuses == nil || len(got[2].Statuses) != 0 {
		t.Fatalf("unmarked row must have empty, non-nil statuses: %#v", got[2].Statuses)
	}
}
