package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-portal-service/internal/services"
	"github.com/SAP-F-2025/school-portal-service/internal/utils"
)

type MaterialHandler struct {
	BaseHandler
	materialService services.MaterialService
}

func NewMaterialHandler(materialService services.MaterialService, logger utils.Logger) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler:     NewBaseHandler(logger),
		materialService: materialService,
	}
}

// CreateMaterial attaches a learning material to an assignment
// @Summary Create material
// @Tags materials
// @Accept json
// @Produce json
// @Param material body services.CreateMaterialRequest true "Material data"
// @Success 201 {object} models.Material
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /materials [post]
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	var req services.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	material, err := h.materialService.Create(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

func (h *MaterialHandler) GetMaterial(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseUintParam(c, "id")
	if id == 0 {
		return
	}

	material, err := h.materialService.GetByID(c.Request.Context(), id, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	query := services.MaterialListQuery{ListQuery: h.parseListQuery(c)}
	if raw := c.Query("classSubjectId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid classSubjectId",
				Details: err.Error(),
			})
			return
		}
		classSubjectID := uint(id)
		query.ClassSubjectID = &classSubjectID
	}

	materials, total, err := h.materialService.List(c.Request.Context(), query, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagedResponse{Data: materials, Total: total})
}

// ListByClassSubject lists the materials attached to one assignment
func (h *MaterialHandler) ListByClassSubject(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	classSubjectID := h.parseUintParam(c, "classSubjectId")
	if classSubjectID == 0 {
		return
	}

	query := services.MaterialListQuery{
		ListQuery:      h.parseListQuery(c),
		ClassSubjectID: &classSubjectID,
	}

	materials, total, err := h.materialService.List(c.Request.Context(), query, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagedResponse{Data: materials, Total: total})
}

// ListMyMaterials returns the materials for the calling student's
// current class
func (h *MaterialHandler) ListMyMaterials(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	materials, err := h.materialService.ListMine(c.Request.Context(), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}

func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseUintParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	material, err := h.materialService.Update(c.Request.Context(), id, &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	id := h.parseUintParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Material deleted successfully"})
}
