package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lohith114/Admin-attendance/internal/auth"
	"github.com/lohith114/Admin-attendance/internal/export"
	"github.com/lohith114/Admin-attendance/internal/httpmiddleware"
	"github.com/lohith114/Admin-attendance/internal/observability"
	"github.com/lohith114/Admin-attendance/internal/roster"
	"github.com/lohith114/Admin-attendance/internal/sheetstore"
)

// Config carries the token settings the login handler needs.
type Config struct {
	JWTIssuer  string
	JWTKey     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Handler serves the admin console API. Handlers hold no state between
// requests; everything lives in the row store behind the service.
type Handler struct {
	svc *roster.Service
	log *zap.Logger
	cfg Config
}

func New(svc *roster.Service, log *zap.Logger, cfg Config) *Handler {
	return &Handler{svc: svc, log: log, cfg: cfg}
}

// Register mounts every route on the router.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/save", h.SaveStudent)
	r.GET("/attendance/current/:classSheet", h.TodayAttendance)
	r.GET("/getUsers", h.GetUsers)
	r.POST("/updateUser", h.UpdateUser)
	r.POST("/attendance/tracker", h.Tracker)
	r.POST("/search-student", h.SearchStudent)
	r.POST("/update-student", h.UpdateStudent)
	r.GET("/attendance/full/:classSheet", h.FullAttendance)
	r.DELETE("/attendance/full/:classSheet", h.DeleteSheet)
	r.POST("/sheet/create", h.CreateSheet)
	r.GET("/attendance/export/:classSheet", h.ExportAttendance)
	r.POST("/login", h.Login)
}

type studentRequest struct {
	Class            string `json:"Class"`
	RollNumber       string `json:"RollNumber"`
	NameOfTheStudent string `json:"NameOfTheStudent"`
	FatherName       string `json:"FatherName"`
	Section          string `json:"Section"`
}

func (r studentRequest) student() roster.Student {
	return roster.Student{
		RollNumber:       r.RollNumber,
		NameOfTheStudent: r.NameOfTheStudent,
		FatherName:       r.FatherName,
		Section:          r.Section,
	}
}

// SaveStudent handles POST /save.
func (h *Handler) SaveStudent(c *gin.Context) {
	var req studentRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, gin.H{
		"Class":            req.Class,
		"RollNumber":       req.RollNumber,
		"NameOfTheStudent": req.NameOfTheStudent,
		"FatherName":       req.FatherName,
		"Section":          req.Section,
	}) {
		return
	}
	if err := h.svc.SaveStudent(c.Request.Context(), req.Class, req.student()); err != nil {
		h.storeError(c, "save data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data saved successfully!"})
}

// TodayAttendance handles GET /attendance/current/:classSheet.
func (h *Handler) TodayAttendance(c *gin.Context) {
	summary, err := h.svc.TodaySummary(c.Request.Context(), c.Param("classSheet"))
	if err != nil {
		if errors.Is(err, roster.ErrNoAttendanceToday) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No attendance marked for today."})
			return
		}
		h.storeError(c, "fetch today's attendance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "todaySummary": summary})
}

// GetUsers handles GET /getUsers. The response is the raw credential block,
// one [username, password] pair per row.
func (h *Handler) GetUsers(c *gin.Context) {
	creds, err := h.svc.Users(c.Request.Context())
	if err != nil {
		h.storeError(c, "fetch user data", err)
		return
	}
	pairs := make([][]string, 0, len(creds))
	for _, cred := range creds {
		pairs = append(pairs, cred.Row())
	}
	c.JSON(http.StatusOK, pairs)
}

// UpdateUser handles POST /updateUser.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req struct {
		CurrentUsername string `json:"CurrentUsername"`
		NewUsername     string `json:"NewUsername"`
		CurrentPassword string `json:"CurrentPassword"`
		NewPassword     string `json:"NewPassword"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, gin.H{
		"CurrentUsername": req.CurrentUsername,
		"NewUsername":     req.NewUsername,
		"CurrentPassword": req.CurrentPassword,
		"NewPassword":     req.NewPassword,
	}) {
		return
	}
	err := h.svc.UpdateUser(c.Request.Context(),
		roster.Credential{Username: req.CurrentUsername, Password: req.CurrentPassword},
		roster.Credential{Username: req.NewUsername, Password: req.NewPassword},
	)
	if err != nil {
		h.storeError(c, "update user info", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User info updated successfully!"})
}

// Tracker handles POST /attendance/tracker.
func (h *Handler) Tracker(c *gin.Context) {
	var req struct {
		ClassSheet string `json:"classSheet"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, gin.H{"classSheet": req.ClassSheet}) {
		return
	}
	entries, summary, err := h.svc.Tracker(c.Request.Context(), req.ClassSheet)
	if err != nil {
		h.storeError(c, "fetch attendance tracker", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tracker": entries, "summary": summary})
}

// SearchStudent handles POST /search-student.
func (h *Handler) SearchStudent(c *gin.Context) {
	var req struct {
		Class      string `json:"Class"`
		RollNumber string `json:"RollNumber"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, gin.H{"Class": req.Class, "RollNumber": req.RollNumber}) {
		return
	}
	st, err := h.svc.SearchStudent(c.Request.Context(), req.Class, req.RollNumber)
	if err != nil {
		if errors.Is(err, roster.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found."})
			return
		}
		h.storeError(c, "search for student", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdateStudent handles POST /update-student.
func (h *Handler) UpdateStudent(c *gin.Context) {
	var req studentRequest
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, gin.H{
		"Class":            req.Class,
		"RollNumber":       req.RollNumber,
		"NameOfTheStudent": req.NameOfTheStudent,
		"FatherName":       req.FatherName,
		"Section":          req.Section,
	}) {
		return
	}
	if err := h.svc.UpdateStudent(c.Request.Context(), req.Class, req.student()); err != nil {
		if errors.Is(err, roster.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found."})
			return
		}
		h.storeError(c, "update student data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student information updated successfully!"})
}

// FullAttendance handles GET /attendance/full/:classSheet.
func (h *Handler) FullAttendance(c *gin.Context) {
	rows, err := h.svc.FullAttendance(c.Request.Context(), c.Param("classSheet"))
	if err != nil {
		h.storeError(c, "fetch full attendance sheet", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "attendanceData": rows})
}

// DeleteSheet handles DELETE /attendance/full/:classSheet.
func (h *Handler) DeleteSheet(c *gin.Context) {
	class := c.Param("classSheet")
	if err := h.svc.DeleteSheet(c.Request.Context(), class); err != nil {
		if errors.Is(err, sheetstore.ErrSheetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Sheet %q not found.", class)})
			return
		}
		h.storeError(c, "delete full attendance sheet", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Attendance sheet for %s deleted successfully.", class),
	})
}

// CreateSheet handles POST /sheet/create.
func (h *Handler) CreateSheet(c *gin.Context) {
	var req struct {
		SheetName string `json:"sheetName"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, gin.H{"sheetName": req.SheetName}) {
		return
	}
	if err := h.svc.CreateSheet(c.Request.Context(), req.SheetName); err != nil {
		h.storeError(c, "create sheet", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Sheet %q created successfully.", req.SheetName),
	})
}

// ExportAttendance handles GET /attendance/export/:classSheet, streaming the
// class sheet as an .xlsx download.
func (h *Handler) ExportAttendance(c *gin.Context) {
	class := c.Param("classSheet")
	header, rows, err := h.svc.SheetRows(c.Request.Context(), class)
	if err != nil {
		h.storeError(c, "export attendance sheet", err)
		return
	}
	f, err := export.Workbook(class, header, rows)
	if err != nil {
		h.storeError(c, "export attendance sheet", err)
		return
	}
	defer f.Close()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		h.storeError(c, "export attendance sheet", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, class))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Login handles POST /login: an exact-match credential check against the
// user sheet, answered with a signed token pair. No route requires the
// token; issuance is a convenience for the console.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"Username"`
		Password string `json:"Password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !requireFields(c, gin.H{"Username": req.Username, "Password": req.Password}) {
		return
	}
	if err := h.svc.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, roster.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		h.storeError(c, "log in", err)
		return
	}
	tokens, err := auth.Issue(req.Username, h.cfg.JWTIssuer, h.cfg.JWTKey, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
	})
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return false
	}
	return true
}

// requireFields rejects the request before any store access when a declared
// required field is empty, naming every missing field.
func requireFields(c *gin.Context, fields gin.H) bool {
	var missing []string
	for name, value := range fields {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return true
	}
	sort.Strings(missing)
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Missing required fields: " + strings.Join(missing, ", "),
	})
	return false
}

// storeError logs the real failure and answers with a generic message; store
// detail never reaches the client.
func (h *Handler) storeError(c *gin.Context, op string, err error) {
	h.log.Error("store operation failed",
		zap.String("op", op),
		zap.Error(err),
		zap.String("request_id", httpmiddleware.RequestIDFrom(c)),
	)
	observability.CaptureErr(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
}
