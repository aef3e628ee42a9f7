package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, Date(2026, time.March, 10), d)
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDate("10/03/2026")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	d, err := ParseClock("10:30:15")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Hour+30*time.Minute+15*time.Second, d)

	_, err = ParseClock("25:00:00")
	assert.Error(t, err)
	_, err = ParseClock("10:30")
	assert.Error(t, err)
}

func TestFirstOnOrAfter(t *testing.T) {
	monday := Date(2026, time.March, 9)

	tests := []struct {
		name    string
		start   time.Time
		weekday time.Weekday
		want    time.Time
	}{
		{"start itself matches", monday, time.Monday, monday},
		{"next day", monday, time.Tuesday, Date(2026, time.March, 10)},
		{"wraps to next week", Date(2026, time.March, 11), time.Tuesday, Date(2026, time.March, 17)},
		{"sunday after monday", monday, time.Sunday, Date(2026, time.March, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstOnOrAfter(tt.start, tt.weekday)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.weekday, got.Weekday())
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	r := NewDateRange(Date(2026, time.March, 9), Date(2026, time.March, 15))

	assert.True(t, r.Contains(Date(2026, time.March, 9)), "inclusive lower bound")
	assert.True(t, r.Contains(Date(2026, time.March, 15)), "inclusive upper bound")
	assert.True(t, r.Contains(Date(2026, time.March, 12)))
	assert.False(t, r.Contains(Date(2026, time.March, 8)))
	assert.False(t, r.Contains(Date(2026, time.March, 16)))
}

func TestDateOfStripsClock(t *testing.T) {
	ts := time.Date(2026, time.March, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, Date(2026, time.March, 10), DateOf(ts))
}
