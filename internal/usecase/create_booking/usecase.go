package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	pkgRepo "github.com/avoevodin/hall-booking-service/internal/infra/storage/pkgcatalog"
)

// UseCase use case создания бронирования
// Обслуживает и клиентскую форму (status = pending), и прямое админское
// создание (status = confirmed)
type UseCase struct {
	bookingRepo  BookingRepository
	eventRepo    EventRepository
	packageRepo  PackageRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	packageRepo PackageRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		packageRepo:  packageRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликта и вставка выполняются в одной сериализуемой транзакции:
// чистая проверка по снепшоту сама по себе не защищает от гонки между
// конкурентными запросами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, slot=%v, guests=%d, admin=%t",
		req.BookingDate, req.SlotKey, req.GuestCount, req.AsAdmin)

	// 1. Валидация и нормализация формы (чистая, все ошибки списком)
	now := uc.timeProvider.Now()
	booking, validationErrs := buildBooking(req, now)
	if len(validationErrs) > 0 {
		uc.logger.Warn("CreateBooking: validation failed: %v", validationErrs)
		return nil, validationErrs
	}

	// 2. Публичный код и статус
	booking.Reference = uuid.NewString()
	if req.AsAdmin {
		booking.Status = domain.StatusConfirmed
	}

	var result *domain.Booking

	// 3. Операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Денормализация данных пакета, если пакет указан
		if booking.PackageID != nil {
			pkg, err := uc.packageRepo.GetByID(txCtx, *booking.PackageID)
			if err != nil {
				if errors.Is(err, pkgRepo.ErrPackageNotFound) {
					uc.logger.Warn("CreateBooking: package id=%d not found", *booking.PackageID)
					return ErrPackageNotFound
				}
				uc.logger.Error("CreateBooking: failed to get package id=%d: %v", *booking.PackageID, err)
				return fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
			}
			booking.PackageName = &pkg.Name
			booking.PackagePrice = &pkg.Price
		}

		// 3.2. События календаря на дату (активные блокировки)
		eventsFilter := domain.EventsFilter{
			StartDate:  &booking.BookingDate,
			EndDate:    &booking.BookingDate,
			OnlyActive: true,
		}
		events, err := uc.eventRepo.GetWithFilter(txCtx, eventsFilter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get events: %v", err)
			return fmt.Errorf("%w: failed to get events: %v", ErrInternal, err)
		}

		// 3.3. Активные бронирования на дату с блокировкой строк (FOR UPDATE)
		bookingsFilter := domain.BookingsFilter{
			StartDate: &booking.BookingDate,
			EndDate:   &booking.BookingDate,
		}
		existing, err := uc.bookingRepo.GetWithFilter(txCtx, bookingsFilter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3.4. Проверка конфликта: блокировка, пересечение, ёмкость дня
		conflict := domain.CheckConflict(booking.BookingDate, booking.StartTime, booking.EndTime, existing, events)
		if !conflict.Available {
			if domain.DayIsBlocked(booking.BookingDate, events) {
				uc.logger.Warn("CreateBooking: date %s is blocked", req.BookingDate)
				return ErrDateBlocked
			}
			uc.logger.Warn("CreateBooking: slot not available on %s (%d bookings, conflicting=%t)",
				req.BookingDate, conflict.BookingCount, conflict.Conflicting)
			return ErrSlotNotAvailable
		}

		// 3.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d ref=%s status=%s",
		result.ID, result.Reference, result.Status)

	return toResponse(result), nil
}

// toResponse конвертирует доменное бронирование в ответ use case
func toResponse(b *domain.Booking) *Response {
	var slotKey *string
	if b.SlotKey != nil {
		s := string(*b.SlotKey)
		slotKey = &s
	}

	return &Response{
		ID:           b.ID,
		Reference:    b.Reference,
		FullName:     b.FullName,
		Mobile:       b.Mobile,
		BookingDate:  b.BookingDate,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		SlotKey:      slotKey,
		Status:       string(b.Status),
		GuestCount:   b.GuestCount,
		PackageID:    b.PackageID,
		PackageName:  b.PackageName,
		PackagePrice: b.PackagePrice,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
