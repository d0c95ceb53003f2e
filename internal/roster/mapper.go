package roster

// Attendance cells start after the fixed student columns A-D.
const fixedColumns = 4

// studentHeader is written to row 1 of every newly created class sheet so
// appended roster rows land from row 2 down.
var studentHeader = []string{"RollNumber", "NameOfTheStudent", "FatherName", "Section"}

// StudentFromRow maps a sheet row onto the fixed A-D columns. Short rows pad
// with empty strings.
func StudentFromRow(row []string) Student {
	return Student{
		RollNumber:       cell(row, 0),
		NameOfTheStudent: cell(row, 1),
		FatherName:       cell(row, 2),
		Section:          cell(row, 3),
	}
}

// Row returns the A-D cells for a student.
func (s Student) Row() []string {
	return []string{s.RollNumber, s.NameOfTheStudent, s.FatherName, s.Section}
}

// CredentialFromRow maps a user sheet row onto columns A-B.
func CredentialFromRow(row []string) Credential {
	return Credential{Username: cell(row, 0), Password: cell(row, 1)}
}

// Row returns the A-B cells for a credential.
func (c Credential) Row() []string {
	return []string{c.Username, c.Password}
}

// AttendanceFromRows reshapes a fetched block (header already split off) into
// per-student date/status runs. The header's date labels are shared across
// every row.
func AttendanceFromRows(header []string, rows [][]string) []AttendanceRow {
	dates := tailCells(header)
	out := make([]AttendanceRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, AttendanceRow{
			RollNumber:  cell(row, 0),
			StudentName: cell(row, 1),
			Dates:       dates,
			Statuses:    tailCells(row),
		})
	}
	return out
}

// tailCells copies the attendance cells past the fixed columns. Always
// non-nil so the JSON shape stays [] rather than null.
func tailCells(row []string) []string {
	if len(row) <= fixedColumns {
		return []string{}
	}
	return append([]string{}, row[fixedColumns:]...)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
