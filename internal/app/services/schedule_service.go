package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/schedule"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
)

// PatternStore is the slice of the program repository the timetable is read
// from: weekly rules, loaded per program or individually.
type PatternStore interface {
	GetProgramByID(ctx context.Context, id int64) (*models.Program, error)
	GetItemByID(ctx context.Context, id int64) (*models.ProgramItem, error)
	GetItemsByProgramID(ctx context.Context, programID int64) ([]*models.ProgramItem, error)
}

// OverrideStore is the slice of the override repository the engine writes
// through. Upsert writes the full desired state of one (item, date) slot;
// UpsertPair applies two such writes atomically.
type OverrideStore interface {
	GetByItemIDs(ctx context.Context, itemIDs []int64) ([]*models.ScheduleOverride, error)
	Upsert(ctx context.Context, ov *models.ScheduleOverride) error
	UpsertPair(ctx context.Context, first, second *models.ScheduleOverride) error
}

// ScheduleService defines the interface for timetable materialization and
// single-occurrence edits
type ScheduleService interface {
	Timetable(ctx context.Context, programID int64, window schedule.DateRange) ([]schedule.Occurrence, error)
	Retime(ctx context.Context, itemID int64, date time.Time, start, end *string) (*models.ScheduleOverride, error)
	Relocate(ctx context.Context, itemID int64, oldDate, newDate time.Time, start, end *string) (*models.ScheduleOverride, error)
	Cancel(ctx context.Context, itemID int64, date time.Time) (*models.ScheduleOverride, error)
}

// scheduleServiceImpl implements the ScheduleService interface
type scheduleServiceImpl struct {
	patterns  PatternStore
	overrides OverrideStore
}

// NewScheduleService creates a new schedule service instance
func NewScheduleService(patterns PatternStore, overrides OverrideStore) ScheduleService {
	return &scheduleServiceImpl{
		patterns:  patterns,
		overrides: overrides,
	}
}

// Timetable materializes the occurrences of one program visible in the given
// window. Rules and overrides are loaded in two bulk reads and expanded in
// memory; nothing is persisted, so concurrent reads need no coordination.
func (s *scheduleServiceImpl) Timetable(ctx context.Context, programID int64, window schedule.DateRange) ([]schedule.Occurrence, error) {
	if window.From.After(window.To) {
		return nil, fmt.Errorf("%w: window start %s is after end %s",
			apperrors.ErrInvalidDateRange, schedule.FormatDate(window.From), schedule.FormatDate(window.To))
	}

	if _, err := s.patterns.GetProgramByID(ctx, programID); err != nil {
		return nil, err
	}

	items, err := s.patterns.GetItemsByProgramID(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("loading program items: %w", err)
	}

	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	overrides, err := s.overrides.GetByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}

	return schedule.Materialize(items, overrides, window), nil
}

// Retime pins the occurrence of one rule on one date to new times. Exactly
// one override row changes; the rule and every other date stay untouched.
func (s *scheduleServiceImpl) Retime(ctx context.Context, itemID int64, date time.Time, start, end *string) (*models.ScheduleOverride, error) {
	if err := s.validateTimes(start, end); err != nil {
		return nil, err
	}
	if _, err := s.patterns.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	ov := schedule.Retimed(itemID, date, start, end)
	if err := s.overrides.Upsert(ctx, &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

// Relocate moves the occurrence of one rule from oldDate to newDate. The move
// is two writes under different natural keys (suppress the old date,
// materialize the new one) applied in a single transaction. When both dates
// are equal the suppression half must be skipped, otherwise the write pair
// would cancel and recreate the same key.
func (s *scheduleServiceImpl) Relocate(ctx context.Context, itemID int64, oldDate, newDate time.Time, start, end *string) (*models.ScheduleOverride, error) {
	if schedule.SameDate(oldDate, newDate) {
		return s.Retime(ctx, itemID, newDate, start, end)
	}

	if err := s.validateTimes(start, end); err != nil {
		return nil, err
	}
	if _, err := s.patterns.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	suppress := schedule.Cancelled(itemID, oldDate)
	moved := schedule.Retimed(itemID, newDate, start, end)
	if err := s.overrides.UpsertPair(ctx, &suppress, &moved); err != nil {
		return nil, err
	}
	return &moved, nil
}

// Cancel suppresses the occurrence of one rule on one date. The rule keeps
// producing occurrences on every other matching date.
func (s *scheduleServiceImpl) Cancel(ctx context.Context, itemID int64, date time.Time) (*models.ScheduleOverride, error) {
	if _, err := s.patterns.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	ov := schedule.Cancelled(itemID, date)
	if err := s.overrides.Upsert(ctx, &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

func (s *scheduleServiceImpl) validateTimes(start, end *string) error {
	for _, t := range []*string{start, end} {
		if t == nil {
			continue
		}
		if _, err := schedule.ParseClock(*t); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
	}
	return nil
}
