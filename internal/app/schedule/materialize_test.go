package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhall/tutorhall/internal/app/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// weeklyItem builds a configured rule. 2026-03-10 is a Tuesday; most tests
// revolve around the week of 2026-03-09 (Monday) to 2026-03-15 (Sunday).
func weeklyItem(id int64, day time.Weekday, start, end string) *models.ProgramItem {
	return &models.ProgramItem{
		ID:        id,
		ProgramID: 1,
		ClassID:   100 + id,
		DayOfWeek: intPtr(int(day)),
		StartTime: strPtr(start),
		EndTime:   strPtr(end),
	}
}

func oneWeek() DateRange {
	return NewDateRange(Date(2026, time.March, 9), Date(2026, time.March, 15))
}

func TestMaterializeNoOverrides(t *testing.T) {
	item := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")

	occs := Materialize([]*models.ProgramItem{item}, nil, oneWeek())

	require.Len(t, occs, 1)
	assert.Equal(t, Date(2026, time.March, 10), occs[0].Date)
	assert.Equal(t, time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC), occs[0].End)
	assert.Nil(t, occs[0].OverrideID)
	assert.Equal(t, "1:2026-03-10", occs[0].Key())
}

func TestMaterializeEveryMatchingWeekday(t *testing.T) {
	item := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
	window := NewDateRange(Date(2026, time.March, 1), Date(2026, time.March, 31))

	occs := Materialize([]*models.ProgramItem{item}, nil, window)

	require.Len(t, occs, 5)
	wantDays := []int{3, 10, 17, 24, 31}
	for i, occ := range occs {
		assert.Equal(t, Date(2026, time.March, wantDays[i]), occ.Date)
		assert.Equal(t, time.Tuesday, occ.Date.Weekday())
	}
}

func TestMaterializeCancelledOverrideSuppressesDate(t *testing.T) {
	item := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
	ov := &models.ScheduleOverride{
		ID:            7,
		ProgramItemID: 1,
		Date:          Date(2026, time.March, 10),
		Cancelled:     true,
	}

	occs := Materialize([]*models.ProgramItem{item}, []*models.ScheduleOverride{ov}, oneWeek())

	assert.Empty(t, occs)
}

func TestMaterializeRetimedOverrideReplacesTimes(t *testing.T) {
	item := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
	ov := &models.ScheduleOverride{
		ID:            7,
		ProgramItemID: 1,
		Date:          Date(2026, time.March, 10),
		StartTime:     strPtr("14:00:00"),
		EndTime:       strPtr("15:30:00"),
	}

	occs := Materialize([]*models.ProgramItem{item}, []*models.ScheduleOverride{ov}, oneWeek())

	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC), occs[0].End)
	require.NotNil(t, occs[0].OverrideID)
	assert.Equal(t, int64(7), *occs[0].OverrideID)
}

func TestMaterializeOverrideFallsBackPerSide(t *testing.T) {
	item := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
	ov := &models.ScheduleOverride{
		ID:            7,
		ProgramItemID: 1,
		Date:          Date(2026, time.March, 10),
		StartTime:     strPtr("09:30:00"),
		// EndTime unset: rule's own end applies
	}

	occs := Materialize([]*models.ProgramItem{item}, []*models.ScheduleOverride{ov}, oneWeek())

	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC), occs[0].End)
}

func TestMaterializeRelocatedOverride(t *testing.T) {
	// Tuesday rule moved to Wednesday March 11 at new times: the Tuesday slot
	// is suppressed and the Wednesday override is emitted by the second pass
	// even though the rule never produces Wednesdays.
	item := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
	suppress := &models.ScheduleOverride{
		ID:            7,
		ProgramItemID: 1,
		Date:          Date(2026, time.March, 10),
		Cancelled:     true,
	}
	moved := &models.ScheduleOverride{
		ID:            8,
		ProgramItemID: 1,
		Date:          Date(2026, time.March, 11),
		StartTime:     strPtr("14:00:00"),
		EndTime:       strPtr("15:00:00"),
	}

	occs := Materialize([]*models.ProgramItem{item},
		[]*models.ScheduleOverride{suppress, moved}, oneWeek())

	require.Len(t, occs, 1)
	assert.Equal(t, Date(2026, time.March, 11), occs[0].Date)
	assert.Equal(t, time.Wednesday, occs[0].Date.Weekday())
	assert.Equal(t, time.Date(2026, time.March, 11, 14, 0, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, time.March, 11, 15, 0, 0, 0, time.UTC), occs[0].End)
	require.NotNil(t, occs[0].OverrideID)
	assert.Equal(t, int64(8), *occs[0].OverrideID)
}

func TestMaterializeRelocatedOverrideOutsideWindowIgnored(t *testing.T) {
	item := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
	moved := &models.ScheduleOverride{
		ID:            8,
		ProgramItemID: 1,
		Date:          Date(2026, time.April, 1),
		StartTime:     strPtr("14:00:00"),
		EndTime:       strPtr("15:00:00"),
	}

	occs := Materialize([]*models.ProgramItem{item}, []*models.ScheduleOverride{moved}, oneWeek())

	require.Len(t, occs, 1)
	assert.Equal(t, Date(2026, time.March, 10), occs[0].Date)
	assert.Nil(t, occs[0].OverrideID)
}

func TestMaterializeUnconfiguredItemSkipped(t *testing.T) {
	items := []*models.ProgramItem{
		{ID: 1, ProgramID: 1, ClassID: 101}, // nothing configured
		{ID: 2, ProgramID: 1, ClassID: 102, DayOfWeek: intPtr(2)},                             // times missing
		{ID: 3, ProgramID: 1, ClassID: 103, StartTime: strPtr("10:00:00"), EndTime: strPtr("11:00:00")}, // weekday missing
	}

	occs := Materialize(items, nil, oneWeek())

	assert.Empty(t, occs)
}

func TestMaterializeValidityWindowClipping(t *testing.T) {
	until := Date(2026, time.March, 10)
	from := Date(2026, time.March, 11)

	tests := []struct {
		name      string
		item      *models.ProgramItem
		window    DateRange
		wantDates []time.Time
	}{
		{
			name: "validity end equals window start keeps the shared date",
			item: func() *models.ProgramItem {
				it := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
				it.ValidUntil = &until
				return it
			}(),
			window:    NewDateRange(Date(2026, time.March, 10), Date(2026, time.March, 31)),
			wantDates: []time.Time{Date(2026, time.March, 10)},
		},
		{
			name: "validity start after window end yields nothing",
			item: func() *models.ProgramItem {
				it := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
				it.ValidFrom = &from
				return it
			}(),
			window:    NewDateRange(Date(2026, time.March, 9), Date(2026, time.March, 10)),
			wantDates: nil,
		},
		{
			name: "validity bounds clip the enumerated weeks",
			item: func() *models.ProgramItem {
				it := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
				vf := Date(2026, time.March, 8)
				vu := Date(2026, time.March, 20)
				it.ValidFrom = &vf
				it.ValidUntil = &vu
				return it
			}(),
			window: NewDateRange(Date(2026, time.March, 1), Date(2026, time.March, 31)),
			wantDates: []time.Time{
				Date(2026, time.March, 10),
				Date(2026, time.March, 17),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occs := Materialize([]*models.ProgramItem{tt.item}, nil, tt.window)
			require.Len(t, occs, len(tt.wantDates))
			for i, want := range tt.wantDates {
				assert.Equal(t, want, occs[i].Date)
			}
		})
	}
}

func TestMaterializeConcreteScenario(t *testing.T) {
	// The full walk-through: a Tuesday 10:00-11:00 rule, one visible week.
	item := weeklyItem(1, time.Tuesday, "10:00:00", "11:00:00")
	window := oneWeek()
	tuesday := Date(2026, time.March, 10)
	wednesday := Date(2026, time.March, 11)

	// No overrides: one occurrence on the Tuesday.
	occs := Materialize([]*models.ProgramItem{item}, nil, window)
	require.Len(t, occs, 1)
	assert.Equal(t, tuesday, occs[0].Date)

	// Deleted: zero occurrences.
	cancel := Cancelled(1, tuesday)
	cancel.ID = 1
	occs = Materialize([]*models.ProgramItem{item},
		[]*models.ScheduleOverride{&cancel}, window)
	assert.Empty(t, occs)

	// Relocated to Wednesday 14:00-15:00: nothing on Tuesday, one on Wednesday.
	move := Retimed(1, wednesday, strPtr("14:00:00"), strPtr("15:00:00"))
	move.ID = 2
	occs = Materialize([]*models.ProgramItem{item},
		[]*models.ScheduleOverride{&cancel, &move}, window)
	require.Len(t, occs, 1)
	assert.Equal(t, wednesday, occs[0].Date)
	assert.Equal(t, time.Date(2026, time.March, 11, 14, 0, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, time.March, 11, 15, 0, 0, 0, time.UTC), occs[0].End)
}

func TestMaterializeSortsAcrossItems(t *testing.T) {
	early := weeklyItem(2, time.Tuesday, "08:00:00", "09:00:00")
	late := weeklyItem(1, time.Monday, "18:00:00", "19:00:00")

	occs := Materialize([]*models.ProgramItem{late, early}, nil, oneWeek())

	require.Len(t, occs, 2)
	assert.Equal(t, Date(2026, time.March, 9), occs[0].Date)  // Monday first
	assert.Equal(t, Date(2026, time.March, 10), occs[1].Date) // Tuesday 08:00 after
}
