package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/repositories"
	"github.com/tutorhall/tutorhall/internal/app/schedule"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
)

// ProgramService defines the interface for program and weekly slot operations
type ProgramService interface {
	CreateProgram(ctx context.Context, program *models.Program) error
	GetProgramByID(ctx context.Context, id int64) (*models.Program, error)
	GetAllPrograms(ctx context.Context) ([]*models.Program, error)
	UpdateProgram(ctx context.Context, program *models.Program) error
	DeleteProgram(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item *models.ProgramItem) error
	GetItemsByProgramID(ctx context.Context, programID int64) ([]*models.ProgramItem, error)
	UpdateItem(ctx context.Context, item *models.ProgramItem) error
	DeleteItem(ctx context.Context, id int64) error
}

// programServiceImpl implements the ProgramService interface
type programServiceImpl struct {
	programRepo *repositories.ProgramRepository
	classRepo   *repositories.ClassRepository
}

// NewProgramService creates a new program service instance
func NewProgramService(programRepo *repositories.ProgramRepository, classRepo *repositories.ClassRepository) ProgramService {
	return &programServiceImpl{
		programRepo: programRepo,
		classRepo:   classRepo,
	}
}

// validateProgram validates program data before database operations
func (s *programServiceImpl) validateProgram(program *models.Program) error {
	if program == nil {
		return fmt.Errorf("%w: program is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(program.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	switch program.Term {
	case models.TermFall, models.TermSpring, models.TermSummer:
	default:
		return fmt.Errorf("%w: unknown term %q", apperrors.ErrValidationFailed, program.Term)
	}
	return nil
}

// validateItem validates a weekly slot. An item may be partially configured;
// only the fields that are set are checked.
func (s *programServiceImpl) validateItem(ctx context.Context, item *models.ProgramItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", apperrors.ErrValidationFailed)
	}
	if item.DayOfWeek != nil && (*item.DayOfWeek < 0 || *item.DayOfWeek > 6) {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", apperrors.ErrValidationFailed)
	}

	var start, end time.Duration
	if item.StartTime != nil {
		d, err := schedule.ParseClock(*item.StartTime)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
		start = d
	}
	if item.EndTime != nil {
		d, err := schedule.ParseClock(*item.EndTime)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
		end = d
	}
	if item.StartTime != nil && item.EndTime != nil && end <= start {
		return fmt.Errorf("%w: endTime must be after startTime", apperrors.ErrValidationFailed)
	}

	if item.ValidFrom != nil && item.ValidUntil != nil && item.ValidUntil.Before(*item.ValidFrom) {
		return fmt.Errorf("%w: validUntil must not be before validFrom", apperrors.ErrValidationFailed)
	}

	if _, err := s.classRepo.GetByID(ctx, item.ClassID); err != nil {
		return err
	}
	return nil
}

// CreateProgram creates a new program
func (s *programServiceImpl) CreateProgram(ctx context.Context, program *models.Program) error {
	if err := s.validateProgram(program); err != nil {
		return err
	}
	return s.programRepo.CreateProgram(ctx, program)
}

// GetProgramByID retrieves a program with its weekly slots
func (s *programServiceImpl) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	program, err := s.programRepo.GetProgramByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.programRepo.GetItemsByProgramID(ctx, id)
	if err != nil {
		return nil, err
	}
	program.Items = items
	return program, nil
}

// GetAllPrograms retrieves all programs
func (s *programServiceImpl) GetAllPrograms(ctx context.Context) ([]*models.Program, error) {
	return s.programRepo.GetAllPrograms(ctx)
}

// UpdateProgram updates an existing program
func (s *programServiceImpl) UpdateProgram(ctx context.Context, program *models.Program) error {
	if err := s.validateProgram(program); err != nil {
		return err
	}
	return s.programRepo.UpdateProgram(ctx, program)
}

// DeleteProgram deletes a program with its slots and their overrides
func (s *programServiceImpl) DeleteProgram(ctx context.Context, id int64) error {
	return s.programRepo.DeleteProgram(ctx, id)
}

// CreateItem schedules a class into a program's weekly slot
func (s *programServiceImpl) CreateItem(ctx context.Context, item *models.ProgramItem) error {
	if err := s.validateItem(ctx, item); err != nil {
		return err
	}
	if _, err := s.programRepo.GetProgramByID(ctx, item.ProgramID); err != nil {
		return err
	}
	return s.programRepo.CreateItem(ctx, item)
}

// GetItemsByProgramID retrieves the weekly slots of a program
func (s *programServiceImpl) GetItemsByProgramID(ctx context.Context, programID int64) ([]*models.ProgramItem, error) {
	if _, err := s.programRepo.GetProgramByID(ctx, programID); err != nil {
		return nil, err
	}
	return s.programRepo.GetItemsByProgramID(ctx, programID)
}

// UpdateItem replaces a weekly slot's rule. Stored overrides are left alone:
// an edited rule changes future materialization while the per-date exceptions
// keep their meaning.
func (s *programServiceImpl) UpdateItem(ctx context.Context, item *models.ProgramItem) error {
	if err := s.validateItem(ctx, item); err != nil {
		return err
	}
	existing, err := s.programRepo.GetItemByID(ctx, item.ID)
	if err != nil {
		return err
	}
	item.ProgramID = existing.ProgramID
	return s.programRepo.UpdateItem(ctx, item)
}

// DeleteItem removes a weekly slot and its overrides
func (s *programServiceImpl) DeleteItem(ctx context.Context, id int64) error {
	return s.programRepo.DeleteItem(ctx, id)
}
