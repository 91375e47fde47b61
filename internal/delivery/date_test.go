package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestNextDeliveryDate(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		expected time.Time
	}{
		{
			// A Wednesday never yields the same Wednesday.
			name:     "from a Wednesday returns the following Saturday",
			from:     date(2025, time.January, 15),
			expected: date(2025, time.January, 18),
		},
		{
			name:     "from a Saturday returns the following Wednesday",
			from:     date(2025, time.January, 18),
			expected: date(2025, time.January, 22),
		},
		{
			name:     "from a Monday returns the Wednesday two days later",
			from:     date(2025, time.January, 13),
			expected: date(2025, time.January, 15),
		},
		{
			name:     "from a Tuesday returns the next day",
			from:     date(2025, time.January, 14),
			expected: date(2025, time.January, 15),
		},
		{
			name:     "from a Thursday returns Saturday",
			from:     date(2025, time.January, 16),
			expected: date(2025, time.January, 18),
		},
		{
			name:     "from a Sunday returns Wednesday",
			from:     date(2025, time.January, 19),
			expected: date(2025, time.January, 22),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDeliveryDate(tt.from)
			assert.Equal(t, tt.expected.Year(), got.Year())
			assert.Equal(t, tt.expected.Month(), got.Month())
			assert.Equal(t, tt.expected.Day(), got.Day())
			assert.True(t, IsDeliveryDay(got))
			assert.True(t, got.After(tt.from))
		})
	}
}

func TestIsDeliveryDay(t *testing.T) {
	assert.True(t, IsDeliveryDay(date(2025, time.January, 15)))  // Wednesday
	assert.True(t, IsDeliveryDay(date(2025, time.January, 18)))  // Saturday
	assert.False(t, IsDeliveryDay(date(2025, time.January, 13))) // Monday
	assert.False(t, IsDeliveryDay(date(2025, time.January, 19))) // Sunday
}

func TestUpcomingDeliveryDates(t *testing.T) {
	dates := UpcomingDeliveryDates(date(2025, time.January, 13), 5)

	require.Len(t, dates, 5)
	for i, d := range dates {
		assert.True(t, IsDeliveryDay(d))
		if i > 0 {
			assert.True(t, d.After(dates[i-1]))
		}
	}

	// Wed 15, Sat 18, Wed 22, Sat 25, Wed 29.
	assert.Equal(t, 15, dates[0].Day())
	assert.Equal(t, 18, dates[1].Day())
	assert.Equal(t, 22, dates[2].Day())
	assert.Equal(t, 25, dates[3].Day())
	assert.Equal(t, 29, dates[4].Day())
}
