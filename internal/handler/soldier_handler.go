package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prism-lt/prism-api/internal/models"
	"github.com/prism-lt/prism-api/internal/service"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
	"github.com/prism-lt/prism-api/pkg/response"
)

// SoldierHandler exposes roster endpoints.
type SoldierHandler struct {
	soldiers *service.SoldierService
}

// NewSoldierHandler constructs SoldierHandler.
func NewSoldierHandler(soldiers *service.SoldierService) *SoldierHandler {
	return &SoldierHandler{soldiers: soldiers}
}

// List godoc
// @Summary List soldiers
// @Tags Soldiers
// @Produce json
// @Param primaryUnit query string false "Filter by primary unit"
// @Param subUnit query string false "Filter by sub-unit"
// @Success 200 {array} models.Soldier
// @Router /soldiers [get]
func (h *SoldierHandler) List(c *gin.Context) {
	filter := models.SoldierFilter{
		PrimaryUnit: c.Query("primaryUnit"),
		SubUnit:     c.Query("subUnit"),
	}

	soldiers, err := h.soldiers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, soldiers)
}

// Get godoc
// @Summary Get soldier by ID
// @Tags Soldiers
// @Produce json
// @Param id path string true "Soldier ID"
// @Success 200 {object} models.Soldier
// @Router /soldiers/{id} [get]
func (h *SoldierHandler) Get(c *gin.Context) {
	soldier, err := h.soldiers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, soldier)
}

// Create godoc
// @Summary Create soldier
// @Tags Soldiers
// @Accept json
// @Produce json
// @Param payload body service.CreateSoldierRequest true "Soldier payload"
// @Success 201 {object} models.Soldier
// @Router /soldiers [post]
func (h *SoldierHandler) Create(c *gin.Context) {
	var req service.CreateSoldierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid soldier data"))
		return
	}

	soldier, err := h.soldiers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, soldier)
}

// Update godoc
// @Summary Update soldier
// @Tags Soldiers
// @Accept json
// @Produce json
// @Param id path string true "Soldier ID"
// @Param payload body service.UpdateSoldierRequest true "Update payload"
// @Success 200 {object} models.Soldier
// @Router /soldiers/{id} [put]
func (h *SoldierHandler) Update(c *gin.Context) {
	var req service.UpdateSoldierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid soldier data"))
		return
	}

	soldier, err := h.soldiers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, soldier)
}

// Delete godoc
// @Summary Delete soldier
// @Tags Soldiers
// @Produce json
// @Param id path string true "Soldier ID"
// @Success 200 {object} map[string]string
// @Router /soldiers/{id} [delete]
func (h *SoldierHandler) Delete(c *gin.Context) {
	if err := h.soldiers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Soldier removed successfully")
}
