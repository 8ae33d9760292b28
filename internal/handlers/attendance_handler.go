package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/services"
	"github.com/SAP-F-2025/school-portal-service/internal/utils"
)

type AttendanceHandler struct {
	BaseHandler
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       NewBaseHandler(logger),
		attendanceService: attendanceService,
	}
}

// BulkRecord replaces a class's attendance for one date
// @Summary Record attendance
// @Description Replaces all attendance rows for the class and date with the submitted batch
// @Tags attendance
// @Accept json
// @Produce json
// @Param attendance body services.BulkAttendanceRequest true "Attendance batch"
// @Success 200 {object} models.BulkWriteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attendance/bulk [post]
func (h *AttendanceHandler) BulkRecord(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	var req services.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	records, err := h.attendanceService.BulkRecord(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BulkWriteResponse{Success: true, Count: len(records)})
}

// ListClassDate returns the attendance rows recorded for one class and
// date, in student id order. Unrecorded roster students are omitted.
func (h *AttendanceHandler) ListClassDate(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	classID := h.parseUintParam(c, "classId")
	if classID == 0 {
		return
	}
	date := h.parseStringParam(c, "date")
	if date == "" {
		return
	}

	records, err := h.attendanceService.ListByClassAndDate(c.Request.Context(), classID, date, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetDaySheet returns the class roster joined with the statuses
// recorded for one date. Students without a row carry a null status.
func (h *AttendanceHandler) GetDaySheet(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	classID := h.parseUintParam(c, "classId")
	if classID == 0 {
		return
	}
	date := h.parseStringParam(c, "date")
	if date == "" {
		return
	}

	sheet, err := h.attendanceService.GetDaySheet(c.Request.Context(), classID, date, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sheet)
}

// ListMyAttendance returns the calling student's own attendance history
func (h *AttendanceHandler) ListMyAttendance(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	records, err := h.attendanceService.ListMine(c.Request.Context(), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) ListStudentAttendance(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	studentID := h.parseStringParam(c, "studentId")
	if studentID == "" {
		return
	}

	records, err := h.attendanceService.ListByStudent(c.Request.Context(), studentID, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
