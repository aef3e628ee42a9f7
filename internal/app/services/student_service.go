package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/repositories"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
)

// StudentService handles student-related operations
type StudentService struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
	}
}

// validateStudent validates student data before database operations
func (s *StudentService) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(student.FirstName) == "" || strings.TrimSpace(student.LastName) == "" {
		return fmt.Errorf("%w: first and last name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(strings.ToLower(student.Email)) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateStudent creates a new student
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}
	return s.studentRepo.Create(ctx, student)
}

// GetStudentByID retrieves a student by ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetAllStudents retrieves students with optional name/email search and pagination
func (s *StudentService) GetAllStudents(ctx context.Context, search string, offset uint64, limit int) ([]*models.Student, int64, error) {
	return s.studentRepo.GetAll(ctx, strings.TrimSpace(search), offset, limit)
}

// UpdateStudent updates an existing student
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}
	return s.studentRepo.Update(ctx, student)
}

// DeleteStudent deletes a student by ID
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.studentRepo.Delete(ctx, id)
}
