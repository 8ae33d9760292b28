package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-portal-service/internal/services"
	"github.com/SAP-F-2025/school-portal-service/internal/utils"
)

type ClassHandler struct {
	BaseHandler
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  NewBaseHandler(logger),
		classService: classService,
	}
}

func (h *ClassHandler) CreateClass(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	var req services.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	class, err := h.classService.Create(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) GetClass(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseUintParam(c, "id")
	if id == 0 {
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

// ListClasses lists classes within the caller's scope. Each class
// carries its derived student count.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	classes, total, err := h.classService.List(c.Request.Context(), h.parseListQuery(c), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagedResponse{Data: classes, Total: total})
}

func (h *ClassHandler) UpdateClass(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseUintParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	class, err := h.classService.Update(c.Request.Context(), id, &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) DeleteClass(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseUintParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Class deleted successfully"})
}
