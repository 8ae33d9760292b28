package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/services"
	"github.com/SAP-F-2025/school-portal-service/internal/utils"
)

// stubAttendanceService returns canned rows so the tests can assert the
// HTTP response shapes in isolation.
type stubAttendanceService struct {
	records []*models.Attendance
}

func (s *stubAttendanceService) BulkRecord(context.Context, *services.BulkAttendanceRequest, services.Principal) ([]*models.Attendance, error) {
	return s.records, nil
}

func (s *stubAttendanceService) ListByClassAndDate(context.Context, uint, string, services.Principal) ([]*models.Attendance, error) {
	return s.records, nil
}

func (s *stubAttendanceService) GetDaySheet(context.Context, uint, string, services.Principal) (*services.AttendanceDaySheet, error) {
	return &services.AttendanceDaySheet{}, nil
}

func (s *stubAttendanceService) ListByStudent(context.Context, string, services.Principal) ([]*models.Attendance, error) {
	return s.records, nil
}

func (s *stubAttendanceService) ListMine(context.Context, services.Principal) ([]*models.Attendance, error) {
	return s.records, nil
}

func attendanceTestRouter(svc services.AttendanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := NewAttendanceHandler(svc, logger)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(contextPrincipalKey, services.Principal{UserID: 10, Username: "gv001", Role: models.RoleTeacher})
	})
	router.POST("/attendance/bulk", handler.BulkRecord)
	router.GET("/attendance/class/:classId/date/:date", handler.ListClassDate)
	return router
}

func attendanceRows() []*models.Attendance {
	day := datatypes.Date(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC))
	return []*models.Attendance{
		{ID: 101, StudentID: "HS001", ClassID: 5, Date: day, Status: models.AttendancePresent},
		{ID: 102, StudentID: "HS002", ClassID: 5, Date: day, Status: models.AttendanceAbsent},
	}
}

func TestAttendanceHandler_BulkRecordResponse(t *testing.T) {
	router := attendanceTestRouter(&stubAttendanceService{records: attendanceRows()})

	body := `{"classId":5,"date":"2025-09-15","items":[` +
		`{"studentId":"HS001","status":"PRESENT"},` +
		`{"studentId":"HS002","status":"ABSENT"}]}`
	req := httptest.NewRequest(http.MethodPost, "/attendance/bulk", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not an object: %v (%s)", err, w.Body.String())
	}
	if !resp.Success {
		t.Error("response should carry success=true")
	}
	if resp.Count != 2 {
		t.Errorf("expected count 2, got %d", resp.Count)
	}
}

func TestAttendanceHandler_ListClassDateResponse(t *testing.T) {
	router := attendanceTestRouter(&stubAttendanceService{records: attendanceRows()})

	req := httptest.NewRequest(http.MethodGet, "/attendance/class/5/date/2025-09-15", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// The body is a bare array of the recorded rows, not an envelope.
	trimmed := strings.TrimSpace(w.Body.String())
	if !strings.HasPrefix(trimmed, "[") {
		t.Fatalf("expected a JSON array, got: %s", trimmed)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["student_id"] != "HS001" || rows[1]["student_id"] != "HS002" {
		t.Errorf("unexpected rows: %v", rows)
	}
	for _, row := range rows {
		if _, ok := row["status"]; !ok {
			t.Errorf("row missing status: %v", row)
		}
	}
}
