package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prism-lt/prism-api/internal/models"
	"github.com/prism-lt/prism-api/internal/service"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
	"github.com/prism-lt/prism-api/pkg/response"
)

// ExerciseHandler exposes training exercise endpoints.
type ExerciseHandler struct {
	exercises *service.ExerciseService
}

// NewExerciseHandler constructs ExerciseHandler.
func NewExerciseHandler(exercises *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

func (h *ExerciseHandler) filterFromQuery(c *gin.Context) (models.ExerciseFilter, bool) {
	filter := models.ExerciseFilter{Unit: c.Query("unit")}
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
// @Summary List exercises
// @Tags Exercises
// @Produce json
// @Param unit query string false "Filter by unit"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {array} models.ExerciseDetail
// @Router /exercises [get]
func (h *ExerciseHandler) List(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid date format"))
		return
	}

	exercises, err := h.exercises.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, exercises)
}

// Get godoc
// @Summary Get exercise by ID
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} models.ExerciseDetail
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) Get(c *gin.Context) {
	exercise, err := h.exercises.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, exercise)
}

// Create godoc
// @Summary Create exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param payload body service.CreateExerciseRequest true "Exercise payload"
// @Success 201 {object} models.ExerciseDetail
// @Router /exercises [post]
func (h *ExerciseHandler) Create(c *gin.Context) {
	var req service.CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid exercise data"))
		return
	}

	exercise, err := h.exercises.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exercise)
}

// Update godoc
// @Summary Update exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param id path string true "Exercise ID"
// @Param payload body service.UpdateExerciseRequest true "Update payload"
// @Success 200 {object} models.ExerciseDetail
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) Update(c *gin.Context) {
	var req service.UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid exercise data"))
		return
	}

	exercise, err := h.exercises.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, exercise)
}

// Delete godoc
// @Summary Delete exercise
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} map[string]string
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) Delete(c *gin.Context) {
	if err := h.exercises.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Exercise removed successfully")
}

// Stats godoc
// @Summary Exercise statistics
// @Tags Exercises
// @Produce json
// @Param unit query string false "Filter by unit"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} models.ExerciseStats
// @Router /exercises/stats [get]
func (h *ExerciseHandler) Stats(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid date format"))
		return
	}

	stats, err := h.exercises.Stats(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
