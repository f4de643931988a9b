package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWindow_TruncatesToDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC)
	end := time.Date(2024, 1, 3, 23, 59, 59, 0, time.UTC)

	w := NewWindow(start, end)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, 3, w.Days())
}

func TestWindow_Contains(t *testing.T) {
	w := NewWindow(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	)

	assert.True(t, w.Contains(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestDay_NormalizesZone(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:00 on Jan 2 in UTC+5 is still Jan 1 in UTC.
	assert.Equal(t,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Day(time.Date(2024, 1, 2, 2, 0, 0, 0, loc)),
	)
}
