package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pressid/mission-orders/internal/timeapi"
)

func TestClassifyStatus(t *testing.T) {
	today := timeapi.NewDate(2024, time.January, 15)

	type testConfig struct {
		name     string
		start    timeapi.Date
		end      timeapi.Date
		expected AssignmentStatus
	}
	for _, tc := range []testConfig{
		{
			name:     "inside window",
			start:    today.AddDays(-5),
			end:      today.AddDays(5),
			expected: AssignmentStatusActive,
		},
		{
			name:     "starts today",
			start:    today,
			end:      today.AddDays(5),
			expected: AssignmentStatusActive,
		},
		{
			name:     "ends today",
			start:    today.AddDays(-5),
			end:      today,
			expected: AssignmentStatusActive,
		},
		{
			name:     "single day window today",
			start:    today,
			end:      today,
			expected: AssignmentStatusActive,
		},
		{
			name:     "starts tomorrow",
			start:    today.AddDays(1),
			end:      today.AddDays(10),
			expected: AssignmentStatusUpcoming,
		},
		{
			name:     "ended yesterday",
			start:    today.AddDays(-10),
			end:      today.AddDays(-1),
			expected: AssignmentStatusExpired,
		},
		{
			name:     "inverted window in the future is upcoming",
			start:    today.AddDays(3),
			end:      today.AddDays(-3),
			expected: AssignmentStatusUpcoming,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyStatus(today, tc.start, tc.end))
		})
	}
}

func TestClassifyStatusWindowSweep(t *testing.T) {
	start := timeapi.NewDate(2024, time.January, 1)
	end := timeapi.NewDate(2024, time.January, 31)
	for day := start.AddDays(-3); !day.After(end.AddDays(3)); day = day.AddDays(1) {
		got := ClassifyStatus(day, start, end)
		switch {
		case day.Before(start):
			assert.Equal(t, AssignmentStatusUpcoming, got, day.String())
		case day.After(end):
			assert.Equal(t, AssignmentStatusExpired, got, day.String())
		default:
			assert.Equal(t, AssignmentStatusActive, got, day.String())
		}
	}
}

func TestAssignmentStatusIsValid(t *testing.T) {
	assert.True(t, AssignmentStatusActive.IsValid())
	assert.True(t, AssignmentStatusUpcoming.IsValid())
	assert.True(t, AssignmentStatusExpired.IsValid())
	assert.False(t, AssignmentStatus("revoked").IsValid())
}
