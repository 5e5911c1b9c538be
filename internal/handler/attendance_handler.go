package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prism-lt/prism-api/internal/models"
	"github.com/prism-lt/prism-api/internal/service"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
	"github.com/prism-lt/prism-api/pkg/response"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func (h *AttendanceHandler) filterFromQuery(c *gin.Context) (models.AttendanceFilter, bool) {
	filter := models.AttendanceFilter{
		Unit:      c.Query("unit"),
		SoldierID: c.Query("soldier"),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AttendanceStatus(raw)
		filter.Status = &status
	}

	if raw := c.Query("date"); raw != "" {
		day, err := service.ParseDay(raw)
		if err != nil {
			return filter, false
		}
		filter.DateFrom = &day
		to := day
		filter.DateTo = &to
		return filter, true
	}

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
// @Summary List attendance records
// @Tags Attendance
// @Produce json
// @Param unit query string false "Filter by unit"
// @Param status query string false "Filter by status"
// @Param soldier query string false "Filter by soldier"
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {array} models.AttendanceRecord
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid date format"))
		return
	}

	records, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// ByDate godoc
// @Summary List attendance for one day
// @Tags Attendance
// @Produce json
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param unit query string false "Filter by unit"
// @Success 200 {array} models.AttendanceRecord
// @Router /attendance/date/{date} [get]
func (h *AttendanceHandler) ByDate(c *gin.Context) {
	day, err := service.ParseDay(c.Param("date"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid date format"))
		return
	}

	records, err := h.attendance.ByDate(c.Request.Context(), day, c.Query("unit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Create godoc
// @Summary Create attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.CreateAttendanceRequest true "Attendance payload"
// @Success 201 {object} models.AttendanceRecord
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req service.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid attendance data"))
		return
	}

	record, err := h.attendance.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Bulk godoc
// @Summary Bulk create or update attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.BulkAttendanceRequest true "Bulk payload"
// @Success 200 {object} models.BulkAttendanceResult
// @Router /attendance/bulk [post]
func (h *AttendanceHandler) Bulk(c *gin.Context) {
	var req service.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Date, unit, and an array of records are required"))
		return
	}

	result, err := h.attendance.BulkReconcile(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Update godoc
// @Summary Update attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param payload body service.UpdateAttendanceRequest true "Update payload"
// @Success 200 {object} models.AttendanceRecord
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req service.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid attendance data"))
		return
	}

	record, err := h.attendance.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, record)
}

// Delete godoc
// @Summary Delete attendance record
// @Tags Attendance
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} map[string]string
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.attendance.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Attendance record removed successfully")
}

// Stats godoc
// @Summary Attendance statistics
// @Tags Attendance
// @Produce json
// @Param unit query string false "Filter by unit"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} models.AttendanceStats
// @Router /attendance/stats [get]
func (h *AttendanceHandler) Stats(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid date format"))
		return
	}

	stats, err := h.attendance.Stats(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// Export godoc
// @Summary Export attendance records
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param unit query string false "Filter by unit"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {file} byte
// @Router /attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid date format"))
		return
	}

	payload, contentType, filename, err := h.attendance.Export(c.Request.Context(), filter, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
