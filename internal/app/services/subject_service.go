package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/repositories"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
	"github.com/tutorhall/tutorhall/internal/pkg/validation"
)

// SubjectService handles subject-related operations
type SubjectService struct {
	subjectRepo *repositories.SubjectRepository
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjectRepo *repositories.SubjectRepository) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
	}
}

// validateSubject validates subject data before database operations
func (s *SubjectService) validateSubject(subject *models.Subject) error {
	if subject == nil {
		return fmt.Errorf("%w: subject is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(subject.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(subject.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidationFailed)
	}
	if !isValidSubjectCode(subject.Code) {
		return fmt.Errorf("%w: code must be alphanumeric and uppercase", apperrors.ErrValidationFailed)
	}
	return nil
}

// isValidSubjectCode checks if a subject code is valid
func isValidSubjectCode(code string) bool {
	return validation.CompiledPatterns.SubjectCode.MatchString(code)
}

// CreateSubject creates a new subject
func (s *SubjectService) CreateSubject(ctx context.Context, subject *models.Subject) error {
	if err := s.validateSubject(subject); err != nil {
		return err
	}
	subject.Code = strings.ToUpper(strings.TrimSpace(subject.Code))
	return s.subjectRepo.Create(ctx, subject)
}

// GetSubjectByID retrieves a subject by ID
func (s *SubjectService) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// GetAllSubjects retrieves all subjects
func (s *SubjectService) GetAllSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.subjectRepo.GetAll(ctx)
}

// UpdateSubject updates an existing subject
func (s *SubjectService) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	if err := s.validateSubject(subject); err != nil {
		return err
	}
	subject.Code = strings.ToUpper(strings.TrimSpace(subject.Code))
	return s.subjectRepo.Update(ctx, subject)
}

// DeleteSubject deletes a subject by ID
func (s *SubjectService) DeleteSubject(ctx context.Context, id int64) error {
	return s.subjectRepo.Delete(ctx, id)
}
