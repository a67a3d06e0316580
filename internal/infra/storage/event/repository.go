package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	"github.com/avoevodin/hall-booking-service/pkg/dbmetrics"
	"github.com/avoevodin/hall-booking-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var eventColumns = []string{
	"id",
	"event_date",
	"event_type",
	"status",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с событиями календаря (блокировками дат)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое событие блокировки
func (r *Repository) Create(ctx context.Context, e *domain.HallEvent) (*domain.HallEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("hall_events").
		Columns(
			"event_date",
			"event_type",
			"status",
			"reason",
		).
		Values(
			e.EventDate,
			e.EventType,
			e.Status,
			e.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.HallEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("hall_events").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.HallEvent
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&e.EventDate,
		&e.EventType,
		&e.Status,
		&e.Reason,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %w", ErrScanRow, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

// GetWithFilter получает события с фильтрацией по периоду и активности
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.EventsFilter) ([]*domain.HallEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(eventColumns...).
		From("hall_events")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"event_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"event_date": *filter.EndDate})
	}
	if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.EventStatusBlocked})
	}

	query, args, err := selectBuilder.
		OrderBy("event_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.HallEvent, 0)

	for rows.Next() {
		var e domain.HallEvent
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.EventDate,
			&e.EventType,
			&e.Status,
			&e.Reason,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan row: %w", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time
		e.UpdatedAt = updatedAt.Time

		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %w", ErrScanRow, err)
	}

	return events, nil
}

// HasActiveBlock проверяет, есть ли активная блокировка на указанную дату
func (r *Repository) HasActiveBlock(ctx context.Context, date string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(1)").
		From("hall_events").
		Where(squirrel.Eq{
			"event_date": date,
			"event_type": domain.EventTypeBlocked,
			"status":     domain.EventStatusBlocked,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveBlock - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasActiveBlock - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// Remove снимает блокировку (мягкое удаление — статус removed)
// Запись остаётся в истории, как и при отмене бронирования
func (r *Repository) Remove(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("hall_events").
		Set("status", domain.EventStatusRemoved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.EventStatusBlocked}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Remove - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Remove - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Remove - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
