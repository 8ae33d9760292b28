package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-portal-service/internal/services"
	"github.com/SAP-F-2025/school-portal-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
	}
}

// CreateStudent creates a student profile
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Param student body services.CreateStudentRequest true "Student data"
// @Success 201 {object} models.Student
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseStringParam(c, "id")
	if id == "" {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// ListStudents lists students within the caller's scope
// @Summary List students
// @Tags students
// @Produce json
// @Param page query int false "Zero-based page (default: 0)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param classId query int false "Filter by class"
// @Param search query string false "Search by name or id"
// @Success 200 {object} PagedResponse
// @Failure 403 {object} ErrorResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	query := services.StudentListQuery{ListQuery: h.parseListQuery(c)}
	if raw := c.Query("classId"); raw != "" {
		classID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid classId",
				Details: err.Error(),
			})
			return
		}
		id := uint(classID)
		query.ClassID = &id
	}

	students, total, err := h.studentService.List(c.Request.Context(), query, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagedResponse{Data: students, Total: total})
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseStringParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseStringParam(c, "id")
	if id == "" {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Student deleted successfully"})
}
