package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lohith114/Admin-attendance/internal/auth"
	"github.com/lohith114/Admin-attendance/internal/roster"
	"github.com/lohith114/Admin-attendance/internal/sheetstore"
)

type fixedDate string

func (d fixedDate) Today() string { return string(d) }

func newTestRouter(t *testing.T) (*gin.Engine, *sheetstore.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := sheetstore.NewMemory("User")
	svc := roster.NewService(m, fixedDate("2026-08-31"), "User")
	h := New(svc, zap.NewNop(), Config{
		JWTIssuer: "attendance-admin",
		JWTKey:    "test-key",
		AccessTTL: time.Minute,
		RefreshTTL: time.Hour,
	})
	r := gin.New()
	h.Register(r)
	return r, m
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestCreateSaveSearchEndToEnd(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/sheet/create", gin.H{"sheetName": "Class11"})
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/save", gin.H{
		"Class": "Class11", "RollNumber": "1", "NameOfTheStudent": "A",
		"FatherName": "B", "Section": "C",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save: %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/search-student", gin.H{"Class": "Class11", "RollNumber": "1"})
	if w.Code != http.StatusOK {
		t.Fatalf("search: %d %s", w.Code, w.Body.String())
	}
	got := decode(t, w)
	want := map[string]any{"RollNumber": "1", "NameOfTheStudent": "A", "FatherName": "B", "Section": "C"}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %s = %v, want %v", k, got[k], v)
		}
	}
}

func TestSaveMissingFieldsNamed(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/save", gin.H{"Class": "Class1", "RollNumber": "1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code %d", w.Code)
	}
	msg, _ := decode(t, w)["error"].(string)
	for _, f := range []string{"NameOfTheStudent", "FatherName", "Section"} {
		if !strings.Contains(msg, f) {
			t.Fatalf("error %q does not name %s", msg, f)
		}
	}
	if strings.Contains(msg, "RollNumber") {
		t.Fatalf("error %q names a field that was present", msg)
	}
}

func TestSearchStudentNotFound(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("Class1", [][]string{
		{"RollNumber", "NameOfTheStudent", "FatherName", "Section"},
	})
	w := do(t, r, http.MethodPost, "/search-student", gin.H{"Class": "Class1", "RollNumber": "42"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("code %d, want 404", w.Code)
	}
}

func TestSearchStudentStoreError(t *testing.T) {
	r, _ := newTestRouter(t)
	// the class sheet does not exist, so the store read fails
	w := do(t, r, http.MethodPost, "/search-student", gin.H{"Class": "Nope", "RollNumber": "1"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code %d, want 500", w.Code)
	}
	if msg, _ := decode(t, w)["error"].(string); !strings.HasPrefix(msg, "Failed to") {
		t.Fatalf("store detail leaked: %q", msg)
	}
}

func TestTodayAttendance(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("Class1", [][]string{
		{"RollNumber", "NameOfTheStudent", "FatherName", "Section", "2026-08-31"},
		{"1", "Asha", "Ravi", "A", "Present"},
	})
	w := do(t, r, http.MethodGet, "/attendance/current/Class1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code %d %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["success"] != true {
		t.Fatalf("body %v", body)
	}
	summary, _ := body["todaySummary"].([]any)
	if len(summary) != 1 {
		t.Fatalf("summary %v", body["todaySummary"])
	}
}

func TestTodayAttendanceNotMarked(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("Class1", [][]string{
		{"RollNumber", "NameOfTheStudent", "FatherName", "Section", "2026-08-30"},
		{"1", "Asha", "Ravi", "A", "Present"},
	})
	w := do(t, r, http.MethodGet, "/attendance/current/Class1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("code %d, want 404", w.Code)
	}
}

func TestTrackerValues(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("Class1", [][]string{
		{"RollNumber", "NameOfTheStudent", "FatherName", "Section", "d1", "d2", "d3"},
		{"1", "Asha", "Ravi", "A", "Present", "Absent", "Present"},
	})
	w := do(t, r, http.MethodPost, "/attendance/tracker", gin.H{"classSheet": "Class1"})
	if w.Code != http.StatusOK {
		t.Fatalf("code %d %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	tracker, _ := body["tracker"].([]any)
	entry, _ := tracker[0].(map[string]any)
	if entry["attendancePercentage"] != "66.67" {
		t.Fatalf("percentage %v", entry["attendancePercentage"])
	}
	if entry["totalPresent"] != float64(2) || entry["totalAbsent"] != float64(1) {
		t.Fatalf("entry %v", entry)
	}
	summary, _ := body["summary"].(map[string]any)
	if summary["totalStudents"] != float64(1) {
		t.Fatalf("summary %v", summary)
	}
}

func TestTrackerMissingClassSheet(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/attendance/tracker", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code %d, want 400", w.Code)
	}
}

func TestGetUsersReturnsPairs(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("User", [][]string{
		{"Username", "Password"},
		{"alice", "pw1"},
		{"bob", "pw2"},
	})
	w := do(t, r, http.MethodGet, "/getUsers", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code %d", w.Code)
	}
	var pairs [][]string
	if err := json.Unmarshal(w.Body.Bytes(), &pairs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(pairs) != 2 || pairs[0][0] != "alice" || pairs[1][1] != "pw2" {
		t.Fatalf("pairs %v", pairs)
	}
}

func TestUpdateUserNoMatchReportsSuccess(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("User", [][]string{
		{"Username", "Password"},
		{"alice", "pw"},
	})
	w := do(t, r, http.MethodPost, "/updateUser", gin.H{
		"CurrentUsername": "alice", "CurrentPassword": "wrong",
		"NewUsername": "alice", "NewPassword": "new",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("code %d %s", w.Code, w.Body.String())
	}
	rows := m.Rows("User")
	if rows[1][1] != "pw" {
		t.Fatalf("row changed: %v", rows[1])
	}
}

func TestFullAttendanceShape(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("Class1", [][]string{
		{"RollNumber", "NameOfTheStudent", "FatherName", "Section", "2026-08-30", "2026-08-31"},
		{"1", "Asha", "Ravi", "A", "Present", "Absent"},
	})
	w := do(t, r, http.MethodGet, "/attendance/full/Class1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code %d", w.Code)
	}
	body := decode(t, w)
	data, _ := body["attendanceData"].([]any)
	row, _ := data[0].(map[string]any)
	dates, _ := row["dates"].([]any)
	statuses, _ := row["statuses"].([]any)
	if len(dates) != 2 || len(statuses) != 2 || statuses[1] != "Absent" {
		t.Fatalf("row %v", row)
	}
}

func TestDeleteSheet(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("Class9", [][]string{{"RollNumber"}})
	w := do(t, r, http.MethodDelete, "/attendance/full/Class9", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	if m.Rows("Class9") != nil {
		t.Fatal("sheet still present")
	}
}

func TestDeleteUnknownSheetIs404(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodDelete, "/attendance/full/Ghost", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("code %d, want 404", w.Code)
	}
}

func TestCreateSheetDuplicateIsStoreError(t *testing.T) {
	r, _ := newTestRouter(t)
	if w := do(t, r, http.MethodPost, "/sheet/create", gin.H{"sheetName": "Class2"}); w.Code != http.StatusOK {
		t.Fatalf("first create: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/sheet/create", gin.H{"sheetName": "Class2"}); w.Code != http.StatusInternalServerError {
		t.Fatalf("duplicate create: %d", w.Code)
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("User", [][]string{
		{"Username", "Password"},
		{"alice", "pw"},
	})
	w := do(t, r, http.MethodPost, "/login", gin.H{"Username": "alice", "Password": "pw"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["access_token"].(string)
	claims, err := auth.Parse(token, "test-key", "attendance-admin")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("claims %+v", claims)
	}

	w = do(t, r, http.MethodPost, "/login", gin.H{"Username": "alice", "Password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: %d", w.Code)
	}
}

func TestExportAttendance(t *testing.T) {
	r, m := newTestRouter(t)
	m.Seed("Class1", [][]string{
		{"RollNumber", "NameOfTheStudent", "FatherName", "Section"},
		{"1", "Asha", "Ravi", "A"},
	})
	w := do(t, r, http.MethodGet, "/attendance/export/Class1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Class1.xlsx") {
		t.Fatalf("disposition %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Fatal("empty workbook body")
	}
}
