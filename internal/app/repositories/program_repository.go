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

// ProgramRepository handles program and program item database operations.
// Program items are the weekly recurrence rules the timetable is materialized
// from; deleting one cascades to its overrides at the database level.
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateProgram creates a new program
func (r *ProgramRepository) CreateProgram(ctx context.Context, program *models.Program) error {
	sql, args, err := r.sb.Insert("programs").
		Columns("name", "term").
		Values(program.Name, program.Term).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create program query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&program.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create program query")
		return fmt.Errorf("error creating program: %w", err)
	}
	return nil
}

// GetProgramByID retrieves a program by ID
func (r *ProgramRepository) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	sql, args, err := r.sb.Select("id", "name", "term").
		From("programs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	program := &models.Program{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&program.ID, &program.Name, &program.Term)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Int64("programID", id).Msg("Error scanning program row")
		return nil, fmt.Errorf("error getting program by ID: %w", err)
	}
	return program, nil
}

// GetAllPrograms retrieves all programs
func (r *ProgramRepository) GetAllPrograms(ctx context.Context) ([]*models.Program, error) {
	sql, args, err := r.sb.Select("id", "name", "term").
		From("programs").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all programs query")
		return nil, fmt.Errorf("error querying programs: %w", err)
	}
	defer rows.Close()

	programs := []*models.Program{}
	for rows.Next() {
		program := &models.Program{}
		if err := rows.Scan(&program.ID, &program.Name, &program.Term); err != nil {
			return nil, fmt.Errorf("error scanning program row: %w", err)
		}
		programs = append(programs, program)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program rows: %w", err)
	}
	return programs, nil
}

// UpdateProgram updates a program's name and term
func (r *ProgramRepository) UpdateProgram(ctx context.Context, program *models.Program) error {
	sql, args, err := r.sb.Update("programs").
		Set("name", program.Name).
		Set("term", program.Term).
		Where(squirrel.Eq{"id": program.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update program query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("programID", program.ID).Msg("Error executing update program query")
		return fmt.Errorf("error updating program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// DeleteProgram deletes a program; its items and their overrides cascade.
func (r *ProgramRepository) DeleteProgram(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("programs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete program query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("programID", id).Msg("Error executing delete program query")
		return fmt.Errorf("error deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// itemColumns is the select list shared by the item readers.
var itemColumns = []string{
	"id", "program_id", "class_id", "day_of_week",
	"start_time", "end_time", "valid_from", "valid_until",
}

func scanItem(row pgx.Row) (*models.ProgramItem, error) {
	item := &models.ProgramItem{}
	err := row.Scan(
		&item.ID, &item.ProgramID, &item.ClassID, &item.DayOfWeek,
		&item.StartTime, &item.EndTime, &item.ValidFrom, &item.ValidUntil,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// CreateItem schedules a class into a weekly slot of a program
func (r *ProgramRepository) CreateItem(ctx context.Context, item *models.ProgramItem) error {
	sql, args, err := r.sb.Insert("program_items").
		Columns("program_id", "class_id", "day_of_week", "start_time", "end_time", "valid_from", "valid_until").
		Values(item.ProgramID, item.ClassID, item.DayOfWeek, item.StartTime, item.EndTime, item.ValidFrom, item.ValidUntil).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create program item query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&item.ID); err != nil {
		logger.Error().Err(err).Int64("programID", item.ProgramID).Msg("Error executing create program item query")
		return fmt.Errorf("error creating program item: %w", err)
	}
	return nil
}

// GetItemByID retrieves a program item by ID
func (r *ProgramRepository) GetItemByID(ctx context.Context, id int64) (*models.ProgramItem, error) {
	sql, args, err := r.sb.Select(itemColumns...).
		From("program_items").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program item query: %w", err)
	}

	item, err := scanItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramItemNotFound
		}
		logger.Error().Err(err).Int64("itemID", id).Msg("Error scanning program item row")
		return nil, fmt.Errorf("error getting program item by ID: %w", err)
	}
	return item, nil
}

// GetItemsByProgramID retrieves all weekly rules of a program
func (r *ProgramRepository) GetItemsByProgramID(ctx context.Context, programID int64) ([]*models.ProgramItem, error) {
	sql, args, err := r.sb.Select(itemColumns...).
		From("program_items").
		Where(squirrel.Eq{"program_id": programID}).
		OrderBy("day_of_week ASC NULLS LAST", "start_time ASC NULLS LAST", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program items query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("programID", programID).Msg("Error executing get program items query")
		return nil, fmt.Errorf("error querying program items: %w", err)
	}
	defer rows.Close()

	items := []*models.ProgramItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning program item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program item rows: %w", err)
	}
	return items, nil
}

// UpdateItem updates a weekly rule's slot and validity window. Existing
// overrides are left untouched: exceptions belong to dates, not to the rule's
// current shape.
func (r *ProgramRepository) UpdateItem(ctx context.Context, item *models.ProgramItem) error {
	sql, args, err := r.sb.Update("program_items").
		Set("class_id", item.ClassID).
		Set("day_of_week", item.DayOfWeek).
		Set("start_time", item.StartTime).
		Set("end_time", item.EndTime).
		Set("valid_from", item.ValidFrom).
		Set("valid_until", item.ValidUntil).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update program item query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", item.ID).Msg("Error executing update program item query")
		return fmt.Errorf("error updating program item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramItemNotFound
	}
	return nil
}

// DeleteItem removes a weekly rule; its overrides cascade at the DB level.
func (r *ProgramRepository) DeleteItem(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("program_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete program item query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", id).Msg("Error executing delete program item query")
		return fmt.Errorf("error deleting program item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramItemNotFound
	}
	return nil
}
