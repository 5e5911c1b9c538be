package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prism-lt/prism-api/internal/models"
	"github.com/prism-lt/prism-api/internal/service"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
	"github.com/prism-lt/prism-api/pkg/response"
)

// StructuralUnitHandler exposes structural unit endpoints.
type StructuralUnitHandler struct {
	units *service.StructuralUnitService
}

// NewStructuralUnitHandler constructs StructuralUnitHandler.
func NewStructuralUnitHandler(units *service.StructuralUnitService) *StructuralUnitHandler {
	return &StructuralUnitHandler{units: units}
}

// List godoc
// @Summary List structural units
// @Tags StructuralUnits
// @Produce json
// @Param parentUnit query string false "Filter by parent unit"
// @Param active query bool false "Filter by active state"
// @Success 200 {array} models.StructuralUnit
// @Router /structural-units [get]
func (h *StructuralUnitHandler) List(c *gin.Context) {
	filter := models.StructuralUnitFilter{ParentUnit: c.Query("parentUnit")}
	if active := c.Query("active"); active != "" {
		v := active == "true"
		filter.Active = &v
	}

	units, err := h.units.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, units)
}

// Get godoc
// @Summary Get structural unit by ID
// @Tags StructuralUnits
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} models.StructuralUnit
// @Router /structural-units/{id} [get]
func (h *StructuralUnitHandler) Get(c *gin.Context) {
	unit, err := h.units.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, unit)
}

// Create godoc
// @Summary Create structural unit
// @Tags StructuralUnits
// @Accept json
// @Produce json
// @Param payload body service.CreateStructuralUnitRequest true "Unit payload"
// @Success 201 {object} models.StructuralUnit
// @Router /structural-units [post]
func (h *StructuralUnitHandler) Create(c *gin.Context) {
	var req service.CreateStructuralUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid structural unit data"))
		return
	}

	unit, err := h.units.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, unit)
}

// Update godoc
// @Summary Update structural unit
// @Tags StructuralUnits
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param payload body service.UpdateStructuralUnitRequest true "Update payload"
// @Success 200 {object} models.StructuralUnit
// @Router /structural-units/{id} [put]
func (h *StructuralUnitHandler) Update(c *gin.Context) {
	var req service.UpdateStructuralUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid structural unit data"))
		return
	}

	unit, err := h.units.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, unit)
}

// Delete godoc
// @Summary Delete structural unit
// @Tags StructuralUnits
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} map[string]string
// @Router /structural-units/{id} [delete]
func (h *StructuralUnitHandler) Delete(c *gin.Context) {
	if err := h.units.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Structural unit removed successfully")
}

// Initialize godoc
// @Summary Seed default structural units
// @Tags StructuralUnits
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /structural-units/initialize [post]
func (h *StructuralUnitHandler) Initialize(c *gin.Context) {
	units, err := h.units.InitializeDefaults(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "Default structural units initialized successfully",
		"units":   units,
	})
}
