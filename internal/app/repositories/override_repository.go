package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorhall/tutorhall/internal/app/models"
	"github.com/tutorhall/tutorhall/internal/app/schedule"
	"github.com/tutorhall/tutorhall/internal/pkg/apperrors"
	"github.com/tutorhall/tutorhall/internal/pkg/dberrors"
	"github.com/tutorhall/tutorhall/internal/pkg/logger"
)

// OverrideRepository handles schedule override database operations. Overrides
// are keyed by (program_item_id, date); every write goes through a
// search-then-insert-or-update upsert so at most one row exists per key. The
// storage-side unique constraint backs this up under concurrent writers.
type OverrideRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOverrideRepository creates a new OverrideRepository
func NewOverrideRepository(db *pgxpool.Pool) *OverrideRepository {
	return &OverrideRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so the upsert
// runs identically inside and outside a transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetByItemAndDate retrieves the override for one (item, date) key.
// Absence is a valid state, not an error: a nil override with nil error is
// returned when no row exists.
func (r *OverrideRepository) GetByItemAndDate(ctx context.Context, itemID int64, date time.Time) (*models.ScheduleOverride, error) {
	return r.getByItemAndDate(ctx, r.db, itemID, date)
}

func (r *OverrideRepository) getByItemAndDate(ctx context.Context, q rowQuerier, itemID int64, date time.Time) (*models.ScheduleOverride, error) {
	sql, args, err := r.sb.Select("id", "program_item_id", "date", "start_time", "end_time", "cancelled").
		From("schedule_overrides").
		Where(squirrel.Eq{"program_item_id": itemID, "date": schedule.DateOf(date)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get override query: %w", err)
	}

	ov := &models.ScheduleOverride{}
	err = q.QueryRow(ctx, sql, args...).Scan(
		&ov.ID, &ov.ProgramItemID, &ov.Date, &ov.StartTime, &ov.EndTime, &ov.Cancelled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("itemID", itemID).Msg("Error scanning override row")
		return nil, fmt.Errorf("error getting override: %w", err)
	}
	return ov, nil
}

// GetByItemIDs bulk-loads every override belonging to the given items, the
// read used to resolve a whole display window in one query.
func (r *OverrideRepository) GetByItemIDs(ctx context.Context, itemIDs []int64) ([]*models.ScheduleOverride, error) {
	if len(itemIDs) == 0 {
		return []*models.ScheduleOverride{}, nil
	}

	sql, args, err := r.sb.Select("id", "program_item_id", "date", "start_time", "end_time", "cancelled").
		From("schedule_overrides").
		Where(squirrel.Eq{"program_item_id": itemIDs}).
		OrderBy("date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list overrides query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list overrides query")
		return nil, fmt.Errorf("error querying overrides: %w", err)
	}
	defer rows.Close()

	overrides := []*models.ScheduleOverride{}
	for rows.Next() {
		ov := &models.ScheduleOverride{}
		if err := rows.Scan(&ov.ID, &ov.ProgramItemID, &ov.Date, &ov.StartTime, &ov.EndTime, &ov.Cancelled); err != nil {
			return nil, fmt.Errorf("error scanning override row: %w", err)
		}
		overrides = append(overrides, ov)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating override rows: %w", err)
	}

	return overrides, nil
}

// Upsert writes the desired state of one (item, date) slot: the existing row
// is updated in place if one exists, otherwise a new row is inserted. On
// return ov.ID carries the row's identity.
func (r *OverrideRepository) Upsert(ctx context.Context, ov *models.ScheduleOverride) error {
	return r.upsert(ctx, r.db, ov)
}

func (r *OverrideRepository) upsert(ctx context.Context, q rowQuerier, ov *models.ScheduleOverride) error {
	existing, err := r.getByItemAndDate(ctx, q, ov.ProgramItemID, ov.Date)
	if err != nil {
		return err
	}

	if existing != nil {
		sql, args, err := r.sb.Update("schedule_overrides").
			Set("start_time", ov.StartTime).
			Set("end_time", ov.EndTime).
			Set("cancelled", ov.Cancelled).
			Where(squirrel.Eq{"id": existing.ID}).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update override query: %w", err)
		}
		if err := q.QueryRow(ctx, sql, args...).Scan(&ov.ID); err != nil {
			logger.Error().Err(err).Int64("overrideID", existing.ID).Msg("Error executing update override query")
			return fmt.Errorf("error updating override: %w", err)
		}
		return nil
	}

	sql, args, err := r.sb.Insert("schedule_overrides").
		Columns("program_item_id", "date", "start_time", "end_time", "cancelled").
		Values(ov.ProgramItemID, schedule.DateOf(ov.Date), ov.StartTime, ov.EndTime, ov.Cancelled).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert override query: %w", err)
	}
	if err := q.QueryRow(ctx, sql, args...).Scan(&ov.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_schedule_overrides_item_date") {
			// A concurrent writer created the row between search and insert.
			logger.Warn().Int64("itemID", ov.ProgramItemID).Msg("Concurrent override insert detected")
			return apperrors.ErrConflict
		}
		logger.Error().Err(err).Int64("itemID", ov.ProgramItemID).Msg("Error executing insert override query")
		return fmt.Errorf("error creating override: %w", err)
	}
	return nil
}

// UpsertPair applies two upserts in a single transaction. A relocation's
// suppress-old and materialize-new halves go through here so a failure never
// leaves only one half applied. apperrors.ErrPartialRelocation is returned
// only when the final commit or rollback itself fails and the outcome cannot
// be known.
func (r *OverrideRepository) UpsertPair(ctx context.Context, first, second *models.ScheduleOverride) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin override transaction: %w", err)
	}

	if err := r.upsert(ctx, tx, first); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback override transaction")
			return fmt.Errorf("%w: %v (rollback: %v)", apperrors.ErrPartialRelocation, err, rbErr)
		}
		return err
	}
	if err := r.upsert(ctx, tx, second); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback override transaction")
			return fmt.Errorf("%w: %v (rollback: %v)", apperrors.ErrPartialRelocation, err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to commit override transaction")
		return fmt.Errorf("%w: commit failed: %v", apperrors.ErrPartialRelocation, err)
	}
	return nil
}
