package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetimedBuildsActiveState(t *testing.T) {
	ov := Retimed(1, time.Date(2026, time.March, 10, 17, 30, 0, 0, time.UTC),
		strPtr("14:00:00"), strPtr("15:00:00"))

	assert.Equal(t, int64(1), ov.ProgramItemID)
	assert.Equal(t, Date(2026, time.March, 10), ov.Date, "date is normalized to midnight")
	assert.Equal(t, "14:00:00", *ov.StartTime)
	assert.Equal(t, "15:00:00", *ov.EndTime)
	assert.False(t, ov.Cancelled)
}

func TestCancelledBuildsSuppressedState(t *testing.T) {
	ov := Cancelled(1, Date(2026, time.March, 10))

	assert.Equal(t, int64(1), ov.ProgramItemID)
	assert.Equal(t, Date(2026, time.March, 10), ov.Date)
	assert.Nil(t, ov.StartTime)
	assert.Nil(t, ov.EndTime)
	assert.True(t, ov.Cancelled)
}

func TestRetimedOverwritesCancelledState(t *testing.T) {
	// Transition deleted -> active-with-times: the desired row carries no trace
	// of the earlier suppression, so a plain upsert un-suppresses the date.
	date := Date(2026, time.March, 10)
	cancelled := Cancelled(1, date)
	retimed := Retimed(1, date, strPtr("09:00:00"), strPtr("10:00:00"))

	assert.True(t, cancelled.Cancelled)
	assert.False(t, retimed.Cancelled)
	assert.Equal(t, cancelled.ProgramItemID, retimed.ProgramItemID)
	assert.Equal(t, cancelled.Date, retimed.Date)
}

func TestSameDate(t *testing.T) {
	assert.True(t, SameDate(
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC),
	))
	assert.False(t, SameDate(
		Date(2026, time.March, 10),
		Date(2026, time.March, 11),
	))
}
