package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/repositories"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
)

// ClassService handles class-related operations
type ClassService struct {
	classRepo   *repositories.ClassRepository
	subjectRepo *repositories.SubjectRepository
	tutorRepo   *repositories.TutorRepository
}

// NewClassService creates a new class service instance
func NewClassService(
	classRepo *repositories.ClassRepository,
	subjectRepo *repositories.SubjectRepository,
	tutorRepo *repositories.TutorRepository,
) *ClassService {
	return &ClassService{
		classRepo:   classRepo,
		subjectRepo: subjectRepo,
		tutorRepo:   tutorRepo,
	}
}

// validateClass validates class data before database operations
func (s *ClassService) validateClass(ctx context.Context, class *models.Class) error {
	if class == nil {
		return fmt.Errorf("%w: class is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(class.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if class.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", apperrors.ErrValidationFailed)
	}

	if _, err := s.subjectRepo.GetByID(ctx, class.SubjectID); err != nil {
		return err
	}
	if _, err := s.tutorRepo.GetByID(ctx, class.TutorID); err != nil {
		return err
	}
	return nil
}

// CreateClass creates a new class
func (s *ClassService) CreateClass(ctx context.Context, class *models.Class) error {
	if err := s.validateClass(ctx, class); err != nil {
		return err
	}
	return s.classRepo.Create(ctx, class)
}

// GetClassByID retrieves a class by ID with its subject and tutor
func (s *ClassService) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// GetClassesByIDs bulk-loads classes with their subject and tutor, keyed by
// id. Used to decorate materialized occurrences.
func (s *ClassService) GetClassesByIDs(ctx context.Context, ids []int64) (map[int64]*models.Class, error) {
	return s.classRepo.GetByIDs(ctx, ids)
}

// GetAllClasses retrieves classes with optional subject and tutor filtering
func (s *ClassService) GetAllClasses(ctx context.Context, subjectID, tutorID *int64) ([]*models.Class, error) {
	return s.classRepo.GetAll(ctx, subjectID, tutorID)
}

// UpdateClass updates an existing class
func (s *ClassService) UpdateClass(ctx context.Context, class *models.Class) error {
	if err := s.validateClass(ctx, class); err != nil {
		return err
	}
	return s.classRepo.Update(ctx, class)
}

// DeleteClass deletes a class by ID. A class that is scheduled into a
// program cannot be deleted; its program items must be removed first.
func (s *ClassService) DeleteClass(ctx context.Context, id int64) error {
	scheduled, err := s.classRepo.HasProgramItems(ctx, id)
	if err != nil {
		return err
	}
	if scheduled {
		return apperrors.ErrClassHasSchedule
	}
	return s.classRepo.Delete(ctx, id)
}
