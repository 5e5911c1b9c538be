package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prism-lt/prism-api/internal/models"
	"github.com/prism-lt/prism-api/internal/service"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
	"github.com/prism-lt/prism-api/pkg/response"
)

// EvaluationHandler exposes evaluation endpoints.
type EvaluationHandler struct {
	evaluations *service.EvaluationService
}

// NewEvaluationHandler constructs EvaluationHandler.
func NewEvaluationHandler(evaluations *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

func (h *EvaluationHandler) filterFromQuery(c *gin.Context) (models.EvaluationFilter, bool) {
	filter := models.EvaluationFilter{EvaluationType: c.Query("evaluationType")}
	from, ok := dateQuery(c, "startDate")
	if !ok {
		return filter, false
	}
	to, ok := dateQuery(c, "endDate")
	if !ok {
		return filter, false
	}
	filter.DateFrom = from
	filter.DateTo = to
	return filter, true
}

// List godoc
// @Summary List evaluations
// @Tags Evaluations
// @Produce json
// @Param evaluationType query string false "Filter by type"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {array} models.Evaluation
// @Router /evaluations [get]
func (h *EvaluationHandler) List(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid date format"))
		return
	}

	evaluations, err := h.evaluations.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, evaluations)
}

// Get godoc
// @Summary Get evaluation by ID
// @Tags Evaluations
// @Produce json
// @Param id path string true "Evaluation ID"
// @Success 200 {object} models.Evaluation
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) Get(c *gin.Context) {
	evaluation, err := h.evaluations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, evaluation)
}

// Create godoc
// @Summary Create evaluation
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body service.CreateEvaluationRequest true "Evaluation payload"
// @Success 201 {object} models.Evaluation
// @Router /evaluations [post]
func (h *EvaluationHandler) Create(c *gin.Context) {
	var req service.CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid evaluation data"))
		return
	}

	evaluation, err := h.evaluations.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, evaluation)
}

// Update godoc
// @Summary Update evaluation
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param id path string true "Evaluation ID"
// @Param payload body service.UpdateEvaluationRequest true "Update payload"
// @Success 200 {object} models.Evaluation
// @Router /evaluations/{id} [put]
func (h *EvaluationHandler) Update(c *gin.Context) {
	var req service.UpdateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid evaluation data"))
		return
	}

	evaluation, err := h.evaluations.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, evaluation)
}

// Delete godoc
// @Summary Delete evaluation
// @Tags Evaluations
// @Produce json
// @Param id path string true "Evaluation ID"
// @Success 200 {object} map[string]string
// @Router /evaluations/{id} [delete]
func (h *EvaluationHandler) Delete(c *gin.Context) {
	if err := h.evaluations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Evaluation removed successfully")
}

// Stats godoc
// @Summary Evaluation statistics
// @Tags Evaluations
// @Produce json
// @Param evaluationType query string false "Filter by type"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} models.EvaluationStats
// @Router /evaluations/stats [get]
func (h *EvaluationHandler) Stats(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid date format"))
		return
	}

	stats, err := h.evaluations.Stats(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
