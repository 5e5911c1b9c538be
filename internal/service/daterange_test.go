package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAndEndOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 4, 13, 22, 45, 123456, time.UTC)

	start := startOfDay(ts)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), start)

	end := endOfDay(ts)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.True(t, end.After(ts))
	assert.Equal(t, start.Day(), end.Day())
}

func TestDayRange(t *testing.T) {
	from, to := dayRange(time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), from)
	assert.True(t, to.After(from))
	assert.Equal(t, from.Day(), to.Day())
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2025-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDay("04.03.2025")
	require.Error(t, err)

	_, err = ParseDay("")
	require.Error(t, err)
}
