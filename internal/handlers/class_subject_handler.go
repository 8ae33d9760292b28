package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/services"
	"github.com/SAP-F-2025/school-portal-service/internal/utils"
)

type ClassSubjectHandler struct {
	BaseHandler
	classSubjectService services.ClassSubjectService
}

func NewClassSubjectHandler(classSubjectService services.ClassSubjectService, logger utils.Logger) *ClassSubjectHandler {
	return &ClassSubjectHandler{
		BaseHandler:         NewBaseHandler(logger),
		classSubjectService: classSubjectService,
	}
}

// CreateClassSubject assigns a teacher to a subject in a class
// @Summary Create teaching assignment
// @Tags class-subjects
// @Accept json
// @Produce json
// @Param assignment body services.CreateClassSubjectRequest true "Assignment data"
// @Success 201 {object} models.ClassSubject
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /class-subjects [post]
func (h *ClassSubjectHandler) CreateClassSubject(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	var req services.CreateClassSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.classSubjectService.Create(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *ClassSubjectHandler) GetClassSubject(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseUintParam(c, "id")
	if id == 0 {
		return
	}

	assignment, err := h.classSubjectService.GetByID(c.Request.Context(), id, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// ListClassSubjects lists assignments filtered by class, subject,
// teacher and status
// @Summary List teaching assignments
// @Tags class-subjects
// @Produce json
// @Param classId query int false "Filter by class"
// @Param subjectId query int false "Filter by subject"
// @Param teacherId query string false "Filter by teacher"
// @Param status query string false "Filter by status (ACTIVE, INACTIVE)"
// @Success 200 {object} PagedResponse
// @Failure 400 {object} ErrorResponse
// @Router /class-subjects [get]
func (h *ClassSubjectHandler) ListClassSubjects(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	query, ok := h.parseClassSubjectQuery(c)
	if !ok {
		return
	}

	assignments, total, err := h.classSubjectService.List(c.Request.Context(), query, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagedResponse{Data: assignments, Total: total})
}

func (h *ClassSubjectHandler) parseClassSubjectQuery(c *gin.Context) (services.ClassSubjectListQuery, bool) {
	query := services.ClassSubjectListQuery{ListQuery: h.parseListQuery(c)}

	if raw := c.Query("classId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid classId",
				Details: err.Error(),
			})
			return query, false
		}
		classID := uint(id)
		query.ClassID = &classID
	}
	if raw := c.Query("subjectId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid subjectId",
				Details: err.Error(),
			})
			return query, false
		}
		subjectID := uint(id)
		query.SubjectID = &subjectID
	}
	if raw := c.Query("teacherId"); raw != "" {
		query.TeacherID = &raw
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AssignmentStatus(raw)
		if status != models.AssignmentActive && status != models.AssignmentInactive {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid status",
				Details: "status must be ACTIVE or INACTIVE",
			})
			return query, false
		}
		query.Status = &status
	}

	return query, true
}

func (h *ClassSubjectHandler) UpdateClassSubject(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseUintParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateClassSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.classSubjectService.Update(c.Request.Context(), id, &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// DeleteClassSubject removes an assignment. Scores, materials and
// attendance recorded under it are kept.
func (h *ClassSubjectHandler) DeleteClassSubject(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseUintParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.classSubjectService.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Class subject deleted successfully"})
}
