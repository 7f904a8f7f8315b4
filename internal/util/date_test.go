package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCivilDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	local := time.Date(2026, 3, 1, 2, 30, 0, 0, jakarta)

	got := CivilDay(local)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 5, 10, 0, 0, 1, 0, time.UTC)
	b := time.Date(2026, 5, 10, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		expected int
	}{
		{"same day", time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), time.Date(2026, 1, 5, 20, 0, 0, 0, time.UTC), 0},
		{"late evening to next morning", time.Date(2026, 1, 5, 23, 0, 0, 0, time.UTC), time.Date(2026, 1, 6, 1, 0, 0, 0, time.UTC), 1},
		{"past date", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), -3},
		{"across leap day", time.Date(2028, 2, 28, 0, 0, 0, 0, time.UTC), time.Date(2028, 3, 1, 0, 0, 0, 0, time.UTC), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2026, 12, 31, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), got)
}
