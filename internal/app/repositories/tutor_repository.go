package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
	"github.com/tutorhall/tutorhall/internal/pkg/logger"
)

// TutorRepository handles tutor database operations
type TutorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTutorRepository creates a new TutorRepository
func NewTutorRepository(db *pgxpool.Pool) *TutorRepository {
	return &TutorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new tutor
func (r *TutorRepository) Create(ctx context.Context, tutor *models.Tutor) error {
	sql, args, err := r.sb.Insert("tutors").
		Columns("first_name", "last_name", "email", "phone", "subject_id").
		Values(tutor.FirstName, tutor.LastName, tutor.Email, tutor.Phone, tutor.SubjectID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create tutor query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&tutor.ID); err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create tutor query")
		return fmt.Errorf("error creating tutor: %w", err)
	}
	return nil
}

// GetByID retrieves a tutor by ID, including the subject relation
func (r *TutorRepository) GetByID(ctx context.Context, id int64) (*models.Tutor, error) {
	sql, args, err := r.sb.Select(
		"t.id", "t.first_name", "t.last_name", "t.email", "t.phone", "t.subject_id",
		"s.id", "s.name", "s.code").
		From("tutors t").
		Join("subjects s ON s.id = t.subject_id").
		Where(squirrel.Eq{"t.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get tutor query: %w", err)
	}

	tutor := &models.Tutor{Subject: &models.Subject{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&tutor.ID, &tutor.FirstName, &tutor.LastName, &tutor.Email, &tutor.Phone, &tutor.SubjectID,
		&tutor.Subject.ID, &tutor.Subject.Name, &tutor.Subject.Code,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTutorNotFound
		}
		logger.Error().Err(err).Int64("tutorID", id).Msg("Error scanning tutor row")
		return nil, fmt.Errorf("error getting tutor by ID: %w", err)
	}
	return tutor, nil
}

// GetAll retrieves tutors with optional subject filtering and pagination
func (r *TutorRepository) GetAll(ctx context.Context, subjectID *int64, offset uint64, limit int) ([]*models.Tutor, int64, error) {
	base := r.sb.Select("id", "first_name", "last_name", "email", "phone", "subject_id").
		From("tutors")
	countBase := r.sb.Select("COUNT(*)").From("tutors")

	if subjectID != nil {
		base = base.Where(squirrel.Eq{"subject_id": *subjectID})
		countBase = countBase.Where(squirrel.Eq{"subject_id": *subjectID})
	}

	countSql, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count tutors query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting tutors")
		return nil, 0, fmt.Errorf("error counting tutors: %w", err)
	}

	sql, args, err := base.
		OrderBy("last_name ASC", "first_name ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get all tutors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all tutors query")
		return nil, 0, fmt.Errorf("error querying tutors: %w", err)
	}
	defer rows.Close()

	tutors := []*models.Tutor{}
	for rows.Next() {
		tutor := &models.Tutor{}
		if err := rows.Scan(&tutor.ID, &tutor.FirstName, &tutor.LastName, &tutor.Email, &tutor.Phone, &tutor.SubjectID); err != nil {
			return nil, 0, fmt.Errorf("error scanning tutor row: %w", err)
		}
		tutors = append(tutors, tutor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating tutor rows: %w", err)
	}
	return tutors, total, nil
}

// Update updates a tutor
func (r *TutorRepository) Update(ctx context.Context, tutor *models.Tutor) error {
	sql, args, err := r.sb.Update("tutors").
		Set("first_name", tutor.FirstName).
		Set("last_name", tutor.LastName).
		Set("email", tutor.Email).
		Set("phone", tutor.Phone).
		Set("subject_id", tutor.SubjectID).
		Where(squirrel.Eq{"id": tutor.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update tutor query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("tutorID", tutor.ID).Msg("Error executing update tutor query")
		return fmt.Errorf("error updating tutor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTutorNotFound
	}
	return nil
}

// Delete deletes a tutor
func (r *TutorRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("tutors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete tutor query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("tutorID", id).Msg("Error executing delete tutor query")
		return fmt.Errorf("error deleting tutor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTutorNotFound
	}
	return nil
}
