package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceHandlerListRejectsBadDate(t *testing.T) {
	handler := NewAttendanceHandler(nil)

	c, w := newTestContext(t, http.MethodGet, "/attendance?date=04.03.2025", nil)

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid date format")
}

func TestAttendanceHandlerListRejectsBadRange(t *testing.T) {
	handler := NewAttendanceHandler(nil)

	c, w := newTestContext(t, http.MethodGet, "/attendance?startDate=2025-03-01&endDate=bogus", nil)

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid date format")
}
