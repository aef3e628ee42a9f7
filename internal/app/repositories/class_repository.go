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

// ClassRepository handles class database operations
type ClassRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	sql, args, err := r.sb.Insert("classes").
		Columns("name", "subject_id", "tutor_id", "capacity").
		Values(class.Name, class.SubjectID, class.TutorID, class.Capacity).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create class query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&class.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create class query")
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

// GetByID retrieves a class by ID with its subject and tutor relations
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.name", "c.subject_id", "c.tutor_id", "c.capacity",
		"s.id", "s.name", "s.code",
		"t.id", "t.first_name", "t.last_name", "t.email", "t.phone", "t.subject_id").
		From("classes c").
		Join("subjects s ON s.id = c.subject_id").
		Join("tutors t ON t.id = c.tutor_id").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	class := &models.Class{Subject: &models.Subject{}, Tutor: &models.Tutor{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&class.ID, &class.Name, &class.SubjectID, &class.TutorID, &class.Capacity,
		&class.Subject.ID, &class.Subject.Name, &class.Subject.Code,
		&class.Tutor.ID, &class.Tutor.FirstName, &class.Tutor.LastName,
		&class.Tutor.Email, &class.Tutor.Phone, &class.Tutor.SubjectID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error scanning class row")
		return nil, fmt.Errorf("error getting class by ID: %w", err)
	}
	return class, nil
}

// GetByIDs bulk-loads classes by id, used to decorate materialized occurrences.
func (r *ClassRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Class, error) {
	result := map[int64]*models.Class{}
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select(
		"c.id", "c.name", "c.subject_id", "c.tutor_id", "c.capacity",
		"s.id", "s.name", "s.code",
		"t.id", "t.first_name", "t.last_name", "t.email", "t.phone", "t.subject_id").
		From("classes c").
		Join("subjects s ON s.id = c.subject_id").
		Join("tutors t ON t.id = c.tutor_id").
		Where(squirrel.Eq{"c.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get classes query")
		return nil, fmt.Errorf("error querying classes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		class := &models.Class{Subject: &models.Subject{}, Tutor: &models.Tutor{}}
		err := rows.Scan(
			&class.ID, &class.Name, &class.SubjectID, &class.TutorID, &class.Capacity,
			&class.Subject.ID, &class.Subject.Name, &class.Subject.Code,
			&class.Tutor.ID, &class.Tutor.FirstName, &class.Tutor.LastName,
			&class.Tutor.Email, &class.Tutor.Phone, &class.Tutor.SubjectID,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		result[class.ID] = class
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}
	return result, nil
}

// GetAll retrieves classes with optional subject/tutor filters
func (r *ClassRepository) GetAll(ctx context.Context, subjectID, tutorID *int64) ([]*models.Class, error) {
	base := r.sb.Select("id", "name", "subject_id", "tutor_id", "capacity").
		From("classes")
	if subjectID != nil {
		base = base.Where(squirrel.Eq{"subject_id": *subjectID})
	}
	if tutorID != nil {
		base = base.Where(squirrel.Eq{"tutor_id": *tutorID})
	}

	sql, args, err := base.OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all classes query")
		return nil, fmt.Errorf("error querying classes: %w", err)
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		class := &models.Class{}
		if err := rows.Scan(&class.ID, &class.Name, &class.SubjectID, &class.TutorID, &class.Capacity); err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}
	return classes, nil
}

// Update updates a class
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	sql, args, err := r.sb.Update("classes").
		Set("name", class.Name).
		Set("subject_id", class.SubjectID).
		Set("tutor_id", class.TutorID).
		Set("capacity", class.Capacity).
		Where(squirrel.Eq{"id": class.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update class query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", class.ID).Msg("Error executing update class query")
		return fmt.Errorf("error updating class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// HasProgramItems reports whether any program schedules this class.
func (r *ClassRepository) HasProgramItems(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("program_items").
		Where(squirrel.Eq{"class_id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build class usage query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking class usage: %w", err)
	}
	return true, nil
}

// Delete deletes a class
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete class query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", id).Msg("Error executing delete class query")
		return fmt.Errorf("error deleting class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}
