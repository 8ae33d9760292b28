package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/services"
	"github.com/SAP-F-2025/school-portal-service/internal/utils"
)

type ScoreHandler struct {
	BaseHandler
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService, logger utils.Logger) *ScoreHandler {
	return &ScoreHandler{
		BaseHandler:  NewBaseHandler(logger),
		scoreService: scoreService,
	}
}

// Upsert creates or overwrites the score identified by student,
// assignment and type
// @Summary Upsert score
// @Tags scores
// @Accept json
// @Produce json
// @Param score body services.ScoreUpsertRequest true "Score data"
// @Success 200 {object} models.Score
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /scores/upsert [post]
func (h *ScoreHandler) Upsert(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	var req services.ScoreUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	score, err := h.scoreService.Upsert(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

func (h *ScoreHandler) ListByClassSubject(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	classSubjectID := h.parseUintParam(c, "classSubjectId")
	if classSubjectID == 0 {
		return
	}

	var query services.ScoreListQuery
	if raw := c.Query("studentId"); raw != "" {
		query.StudentID = &raw
	}
	if raw := c.Query("type"); raw != "" {
		scoreType := models.ScoreType(raw)
		if !scoreType.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid type",
				Details: "type must be one of oral, quiz, mid, final",
			})
			return
		}
		query.Type = &scoreType
	}

	scores, err := h.scoreService.ListByClassSubject(c.Request.Context(), classSubjectID, query, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scores)
}

// MySummary returns the calling student's own score summary
func (h *ScoreHandler) MySummary(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	summary, err := h.scoreService.MySummary(c.Request.Context(), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// StudentSummary returns a student's scores and their average. Cleared
// scores stay in the list but are skipped when averaging.
func (h *ScoreHandler) StudentSummary(c *gin.Context) {
	principal, ok := h.principalFromContext(c)
	if !ok {
		return
	}

	studentID := h.parseStringParam(c, "studentId")
	if studentID == "" {
		return
	}

	summary, err := h.scoreService.StudentSummary(c.Request.Context(), studentID, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
