package roster

// Student is one roster row in columns A-D of a class sheet. Field names
// double as the JSON keys the admin console sends and receives.
type Student struct {
	RollNumber       string `json:"RollNumber"`
	NameOfTheStudent string `json:"NameOfTheStudent"`
	FatherName       string `json:"FatherName"`
	Section          string `json:"Section"`
}

// Credential is one teacher account row in the user sheet, columns A-B.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DayStatus is one student's attendance cell for a single date.
type DayStatus struct {
	RollNumber  string `json:"rollNumber"`
	StudentName string `json:"studentName"`
	Status      string `json:"status"`
}

// AttendanceRow pairs a student with the full run of date-keyed cells.
type AttendanceRow struct {
	RollNumber  string   `json:"rollNumber"`
	StudentName string   `json:"studentName"`
	Dates       []string `json:"dates"`
	Statuses    []string `json:"statuses"`
}

// TrackerEntry is the per-student attendance aggregate.
type TrackerEntry struct {
	RollNumber   string `json:"rollNumber"`
	StudentName  string `json:"studentName"`
	Section      string `json:"section"`
	TotalPresent int    `json:"totalPresent"`
	TotalAbsent  int    `json:"totalAbsent"`
	// Fixed-point string with two decimals; "0" when no day is marked yet.
	AttendancePercentage string `json:"attendancePercentage"`
}

// TrackerSummary is the class-wide aggregate.
type TrackerSummary struct {
	TotalStudents int `json:"totalStudents"`
	TotalPresent  int `json:"totalPresent"`
	TotalAbsent   int `json:"totalAbsent"`
}
