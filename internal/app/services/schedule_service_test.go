package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/schedule"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// ── Fake pattern store ──

type fakePatternStore struct {
	programs map[int64]*models.Program
	items    map[int64]*models.ProgramItem
}

func newFakePatternStore() *fakePatternStore {
	return &fakePatternStore{
		programs: make(map[int64]*models.Program),
		items:    make(map[int64]*models.ProgramItem),
	}
}

func (f *fakePatternStore) GetProgramByID(_ context.Context, id int64) (*models.Program, error) {
	if p, ok := f.programs[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProgramNotFound
}

func (f *fakePatternStore) GetItemByID(_ context.Context, id int64) (*models.ProgramItem, error) {
	if it, ok := f.items[id]; ok {
		return it, nil
	}
	return nil, apperrors.ErrProgramItemNotFound
}

func (f *fakePatternStore) GetItemsByProgramID(_ context.Context, programID int64) ([]*models.ProgramItem, error) {
	var items []*models.ProgramItem
	for _, it := range f.items {
		if it.ProgramID == programID {
			items = append(items, it)
		}
	}
	return items, nil
}

// ── Fake override store ──

// fakeOverrideStore reproduces the natural-key upsert contract: one row per
// (item, date), search before write, rows never deleted.
type fakeOverrideStore struct {
	rows     map[string]*models.ScheduleOverride
	nextID   int64
	failNext error // next write returns this error
}

func newFakeOverrideStore() *fakeOverrideStore {
	return &fakeOverrideStore{rows: make(map[string]*models.ScheduleOverride)}
}

func key(itemID int64, date time.Time) string {
	return strconv.FormatInt(itemID, 10) + "#" + schedule.FormatDate(date)
}

func (f *fakeOverrideStore) GetByItemIDs(_ context.Context, itemIDs []int64) ([]*models.ScheduleOverride, error) {
	var out []*models.ScheduleOverride
	for _, ov := range f.rows {
		for _, id := range itemIDs {
			if ov.ProgramItemID == id {
				cp := *ov
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeOverrideStore) Upsert(_ context.Context, ov *models.ScheduleOverride) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	k := key(ov.ProgramItemID, ov.Date)
	if existing, ok := f.rows[k]; ok {
		ov.ID = existing.ID
	} else {
		f.nextID++
		ov.ID = f.nextID
	}
	cp := *ov
	f.rows[k] = &cp
	return nil
}

func (f *fakeOverrideStore) UpsertPair(ctx context.Context, first, second *models.ScheduleOverride) error {
	// All-or-nothing, like the transactional repository implementation.
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	if err := f.Upsert(ctx, first); err != nil {
		return err
	}
	return f.Upsert(ctx, second)
}

func (f *fakeOverrideStore) count() int { return len(f.rows) }

// ── Setup ──

func newScheduleFixture() (*fakePatternStore, *fakeOverrideStore, ScheduleService) {
	patterns := newFakePatternStore()
	overrides := newFakeOverrideStore()

	patterns.programs[1] = &models.Program{ID: 1, Name: "Spring Evening", Term: models.TermSpring}
	patterns.items[10] = &models.ProgramItem{
		ID:        10,
		ProgramID: 1,
		ClassID:   100,
		DayOfWeek: intPtr(int(time.Tuesday)),
		StartTime: strPtr("10:00:00"),
		EndTime:   strPtr("11:00:00"),
	}

	return patterns, overrides, NewScheduleService(patterns, overrides)
}

func weekWindow() schedule.DateRange {
	return schedule.NewDateRange(
		schedule.Date(2026, time.March, 9),
		schedule.Date(2026, time.March, 15),
	)
}

// ── Tests ──

func TestTimetableRejectsInvertedWindow(t *testing.T) {
	_, _, svc := newScheduleFixture()

	_, err := svc.Timetable(context.Background(),
		1, schedule.DateRange{From: schedule.Date(2026, time.March, 15), To: schedule.Date(2026, time.March, 9)})

	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
}

func TestTimetableUnknownProgram(t *testing.T) {
	_, _, svc := newScheduleFixture()

	_, err := svc.Timetable(context.Background(), 99, weekWindow())

	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
}

func TestRetimeIsIdempotent(t *testing.T) {
	_, overrides, svc := newScheduleFixture()
	ctx := context.Background()
	tuesday := schedule.Date(2026, time.March, 10)

	first, err := svc.Retime(ctx, 10, tuesday, strPtr("14:00:00"), strPtr("15:00:00"))
	require.NoError(t, err)
	second, err := svc.Retime(ctx, 10, tuesday, strPtr("14:00:00"), strPtr("15:00:00"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "the same row is updated, not duplicated")
	assert.Equal(t, 1, overrides.count())
	assert.Equal(t, first, second)
}

func TestRetimeUnknownItem(t *testing.T) {
	_, overrides, svc := newScheduleFixture()

	_, err := svc.Retime(context.Background(), 99,
		schedule.Date(2026, time.March, 10), strPtr("14:00:00"), strPtr("15:00:00"))

	assert.ErrorIs(t, err, apperrors.ErrProgramItemNotFound)
	assert.Zero(t, overrides.count())
}

func TestRetimeRejectsMalformedTime(t *testing.T) {
	_, overrides, svc := newScheduleFixture()

	_, err := svc.Retime(context.Background(), 10,
		schedule.Date(2026, time.March, 10), strPtr("2pm"), nil)

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Zero(t, overrides.count())
}

func TestCancelThenMaterializeSuppressesDate(t *testing.T) {
	_, _, svc := newScheduleFixture()
	ctx := context.Background()
	tuesday := schedule.Date(2026, time.March, 10)

	occs, err := svc.Timetable(ctx, 1, weekWindow())
	require.NoError(t, err)
	require.Len(t, occs, 1)

	ov, err := svc.Cancel(ctx, 10, tuesday)
	require.NoError(t, err)
	assert.True(t, ov.Cancelled)
	assert.Nil(t, ov.StartTime)

	occs, err = svc.Timetable(ctx, 1, weekWindow())
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestRelocateMovesOccurrenceOffCycle(t *testing.T) {
	_, overrides, svc := newScheduleFixture()
	ctx := context.Background()
	tuesday := schedule.Date(2026, time.March, 10)
	wednesday := schedule.Date(2026, time.March, 11)

	moved, err := svc.Relocate(ctx, 10, tuesday, wednesday, strPtr("14:00:00"), strPtr("15:00:00"))
	require.NoError(t, err)
	assert.False(t, moved.Cancelled)
	assert.Equal(t, wednesday, moved.Date)
	assert.Equal(t, 2, overrides.count(), "suppression plus materialization")

	occs, err := svc.Timetable(ctx, 1, weekWindow())
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, wednesday, occs[0].Date)
	assert.Equal(t, time.Date(2026, time.March, 11, 14, 0, 0, 0, time.UTC), occs[0].Start)
}

func TestRelocateRoundTrip(t *testing.T) {
	// Move Tuesday -> Wednesday, then back. The Tuesday must produce exactly
	// one occurrence and the Wednesday none, never both and never neither.
	_, _, svc := newScheduleFixture()
	ctx := context.Background()
	tuesday := schedule.Date(2026, time.March, 10)
	wednesday := schedule.Date(2026, time.March, 11)

	_, err := svc.Relocate(ctx, 10, tuesday, wednesday, strPtr("14:00:00"), strPtr("15:00:00"))
	require.NoError(t, err)
	_, err = svc.Relocate(ctx, 10, wednesday, tuesday, strPtr("09:00:00"), strPtr("10:00:00"))
	require.NoError(t, err)

	occs, err := svc.Timetable(ctx, 1, weekWindow())
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, tuesday, occs[0].Date)
	assert.Equal(t, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC), occs[0].Start)
}

func TestRelocateSameDateDegeneratesToRetime(t *testing.T) {
	_, overrides, svc := newScheduleFixture()
	ctx := context.Background()
	tuesday := schedule.Date(2026, time.March, 10)

	ov, err := svc.Relocate(ctx, 10, tuesday, tuesday, strPtr("14:00:00"), strPtr("15:00:00"))
	require.NoError(t, err)

	assert.False(t, ov.Cancelled)
	assert.Equal(t, 1, overrides.count(), "no suppression row for a same-date move")

	occs, err := svc.Timetable(ctx, 1, weekWindow())
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC), occs[0].Start)
}

func TestRelocateSurfacesStoreFailure(t *testing.T) {
	_, overrides, svc := newScheduleFixture()
	ctx := context.Background()
	storeErr := errors.New("connection reset")
	overrides.failNext = storeErr

	_, err := svc.Relocate(ctx, 10,
		schedule.Date(2026, time.March, 10), schedule.Date(2026, time.March, 11),
		strPtr("14:00:00"), strPtr("15:00:00"))

	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Zero(t, overrides.count(), "failed relocation applies neither half")

	// The display still shows the original occurrence; the caller may retry.
	occs, err := svc.Timetable(ctx, 1, weekWindow())
	require.NoError(t, err)
	assert.Len(t, occs, 1)
}

func TestCancelIsUpsertNotInsert(t *testing.T) {
	_, overrides, svc := newScheduleFixture()
	ctx := context.Background()
	tuesday := schedule.Date(2026, time.March, 10)

	retimed, err := svc.Retime(ctx, 10, tuesday, strPtr("14:00:00"), strPtr("15:00:00"))
	require.NoError(t, err)
	cancelled, err := svc.Cancel(ctx, 10, tuesday)
	require.NoError(t, err)

	assert.Equal(t, retimed.ID, cancelled.ID, "the same slot transitions, no second row")
	assert.Equal(t, 1, overrides.count())
	assert.True(t, cancelled.Cancelled)
	assert.Nil(t, cancelled.StartTime, "cancelling clears the times")
}
