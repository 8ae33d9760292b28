package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-portal-service/internal/services"
	"github.com/SAP-F-2025/school-portal-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// ExportClassScores downloads a score sheet for one assignment
// @Summary Export class scores
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param classSubjectId path int true "Class subject ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reports/scores/class-subject/{classSubjectId}/xlsx [get]
func (h *ReportHandler) ExportClassScores(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	classSubjectID := h.parseUintParam(c, "classSubjectId")
	if classSubjectID == 0 {
		return
	}

	content, filename, err := h.reportService.ExportClassScores(c.Request.Context(), classSubjectID, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, content)
}

// ExportAttendanceMonth downloads a class's attendance grid for the
// month given as ?month=YYYY-MM
func (h *ReportHandler) ExportAttendanceMonth(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	classID := h.parseUintParam(c, "classId")
	if classID == 0 {
		return
	}

	month, err := time.Parse("2006-01", c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid month",
			Details: "month must be in YYYY-MM format",
		})
		return
	}

	content, filename, err := h.reportService.ExportAttendanceMonth(c.Request.Context(), classID, month.Year(), int(month.Month()), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, content)
}
