package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/repositories"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
)

// TutorService defines the interface for tutor-related operations
type TutorService interface {
	CreateTutor(ctx context.Context, tutor *models.Tutor) error
	GetTutorByID(ctx context.Context, id int64) (*models.Tutor, error)
	GetAllTutors(ctx context.Context, subjectID *int64, offset uint64, limit int) ([]*models.Tutor, int64, error)
	UpdateTutor(ctx context.Context, tutor *models.Tutor) error
	DeleteTutor(ctx context.Context, id int64) error
}

// tutorServiceImpl implements the TutorService interface
type tutorServiceImpl struct {
	tutorRepo   *repositories.TutorRepository
	subjectRepo *repositories.SubjectRepository
}

// NewTutorService creates a new tutor service instance
func NewTutorService(tutorRepo *repositories.TutorRepository, subjectRepo *repositories.SubjectRepository) TutorService {
	return &tutorServiceImpl{
		tutorRepo:   tutorRepo,
		subjectRepo: subjectRepo,
	}
}

// validateTutor validates tutor data before database operations
func (s *tutorServiceImpl) validateTutor(ctx context.Context, tutor *models.Tutor) error {
	if tutor == nil {
		return fmt.Errorf("%w: tutor is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(tutor.FirstName) == "" || strings.TrimSpace(tutor.LastName) == "" {
		return fmt.Errorf("%w: first and last name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(strings.ToLower(tutor.Email)) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}

	// The referenced subject must exist
	if _, err := s.subjectRepo.GetByID(ctx, tutor.SubjectID); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return apperrors.ErrSubjectNotFound
		}
		return fmt.Errorf("error checking subject: %w", err)
	}
	return nil
}

// CreateTutor creates a new tutor
func (s *tutorServiceImpl) CreateTutor(ctx context.Context, tutor *models.Tutor) error {
	if err := s.validateTutor(ctx, tutor); err != nil {
		return err
	}
	return s.tutorRepo.Create(ctx, tutor)
}

// GetTutorByID retrieves a tutor by ID with its subject
func (s *tutorServiceImpl) GetTutorByID(ctx context.Context, id int64) (*models.Tutor, error) {
	return s.tutorRepo.GetByID(ctx, id)
}

// GetAllTutors retrieves tutors with optional subject filtering and pagination
func (s *tutorServiceImpl) GetAllTutors(ctx context.Context, subjectID *int64, offset uint64, limit int) ([]*models.Tutor, int64, error) {
	return s.tutorRepo.GetAll(ctx, subjectID, offset, limit)
}

// UpdateTutor updates an existing tutor
func (s *tutorServiceImpl) UpdateTutor(ctx context.Context, tutor *models.Tutor) error {
	if err := s.validateTutor(ctx, tutor); err != nil {
		return err
	}
	return s.tutorRepo.Update(ctx, tutor)
}

// DeleteTutor deletes a tutor by ID
func (s *tutorServiceImpl) DeleteTutor(ctx context.Context, id int64) error {
	return s.tutorRepo.Delete(ctx, id)
}
