package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	"github.com/avoevodin/hall-booking-service/pkg/dbmetrics"
	"github.com/avoevodin/hall-booking-service/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings для SELECT
var bookingColumns = []string{
	"id",
	"reference",
	"full_name",
	"mobile",
	"booking_date",
	"start_time",
	"end_time",
	"slot_key",
	"status",
	"guest_count",
	"package_id",
	"package_name",
	"package_price",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями зала
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание бронирования с проверкой доступности должно выполняться в сериализуемой
// транзакции — иначе два конкурентных запроса могут пройти проверку по одному
// и тому же снепшоту и превысить ёмкость дня
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var slotKey *string
	if b.SlotKey != nil {
		slotKey = (*string)(b.SlotKey)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"full_name",
			"mobile",
			"booking_date",
			"start_time",
			"end_time",
			"slot_key",
			"status",
			"guest_count",
			"package_id",
			"package_name",
			"package_price",
			"notes",
		).
		Values(
			b.Reference,
			b.FullName,
			b.Mobile,
			b.BookingDate,
			b.StartTime,
			b.EndTime,
			slotKey,
			b.Status,
			b.GuestCount,
			b.PackageID,
			b.PackageName,
			b.PackagePrice,
			b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByReference получает бронирование по публичному коду
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"reference": reference}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByReference")
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по периоду (StartDate, EndDate), статусу
// и включению неактивных бронирований.
//
// Внутри транзакции выборка на конкретную дату выполняется с FOR UPDATE —
// это блокирует строки дня на время проверки конфликта при создании
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDay {
		// Для конкретной даты сортируем по времени начала (ASC)
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		// Для периода сортируем по дате и времени (DESC - сначала новые)
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Блокировка строк дня внутри транзакции создания/подтверждения
	if dbmetrics.IsInTransaction(ctx) && singleDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
// Отмена — смена статуса, физическое удаление записей не используется
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateDetails обновляет реквизиты бронирования
// Обновляются только переданные (ненулевые) поля
func (r *Repository) UpdateDetails(ctx context.Context, id int64, upd domain.BookingUpdate) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.FullName != nil {
		updateBuilder = updateBuilder.Set("full_name", *upd.FullName)
	}
	if upd.Mobile != nil {
		updateBuilder = updateBuilder.Set("mobile", *upd.Mobile)
	}
	if upd.GuestCount != nil {
		updateBuilder = updateBuilder.Set("guest_count", *upd.GuestCount)
	}
	if upd.BookingDate != nil {
		updateBuilder = updateBuilder.Set("booking_date", *upd.BookingDate)
	}
	if upd.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", *upd.EndTime)
	}
	if upd.SlotKey != nil {
		updateBuilder = updateBuilder.Set("slot_key", string(*upd.SlotKey))
	}
	if upd.PackagePrice != nil {
		updateBuilder = updateBuilder.Set("package_price", *upd.PackagePrice)
	}
	if upd.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *upd.Notes)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + joinColumns(bookingColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "UpdateDetails")
}

// CompletePastConfirmed переводит подтверждённые бронирования с датой раньше before
// в статус completed. Возвращает количество обновлённых записей.
// Используется фоновой задачей завершения прошедших бронирований
func (r *Repository) CompletePastConfirmed(ctx context.Context, before string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"booking_date": before}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompletePastConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompletePastConfirmed - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompletePastConfirmed - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanOne сканирует одну строку в бронирование
func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Booking, error) {
	var b domain.Booking
	var slotKey sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.FullName,
		&b.Mobile,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&slotKey,
		&b.Status,
		&b.GuestCount,
		&b.PackageID,
		&b.PackageName,
		&b.PackagePrice,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	if slotKey.Valid {
		key := domain.SlotKey(slotKey.String)
		b.SlotKey = &key
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var slotKey sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.Reference,
			&b.FullName,
			&b.Mobile,
			&b.BookingDate,
			&b.StartTime,
			&b.EndTime,
			&slotKey,
			&b.Status,
			&b.GuestCount,
			&b.PackageID,
			&b.PackageName,
			&b.PackagePrice,
			&b.Notes,
			&b.CancellationReason,
			&b.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}

		if slotKey.Valid {
			key := domain.SlotKey(slotKey.String)
			b.SlotKey = &key
		}
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// joinColumns собирает список колонок для RETURNING
func joinColumns(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
