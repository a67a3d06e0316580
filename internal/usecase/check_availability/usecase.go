package check_availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	"github.com/avoevodin/hall-booking-service/pkg/types"
)

// UseCase use case проверки доступности интервала
// Чистое чтение по снепшоту, без блокировок: результат носит справочный
// характер, гонку с конкурентным созданием закрывает транзакция create_booking
type UseCase struct {
	bookingRepo BookingRepository
	eventRepo   EventRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, eventRepo EventRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		logger:      logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: date=%s, slot=%v", req.Date, req.SlotKey)

	// 1. Валидация даты и разрешение интервала
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	start, end, err := resolveInterval(req)
	if err != nil {
		return nil, err
	}

	// 2. События календаря на дату (активные блокировки)
	eventsFilter := domain.EventsFilter{
		StartDate:  &date,
		EndDate:    &date,
		OnlyActive: true,
	}
	events, err := uc.eventRepo.GetWithFilter(ctx, eventsFilter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get events: %v", err)
		return nil, fmt.Errorf("%w: failed to get events: %v", ErrInternal, err)
	}

	// 3. Активные бронирования на дату
	bookingsFilter := domain.BookingsFilter{
		StartDate: &date,
		EndDate:   &date,
	}
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, bookingsFilter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Проверка конфликта
	conflict := domain.CheckConflict(date, start, end, bookings, events)

	return &Response{
		Available:    conflict.Available,
		Conflicting:  conflict.Conflicting,
		Blocked:      domain.DayIsBlocked(date, events),
		BookingCount: conflict.BookingCount,
		StartTime:    start,
		EndTime:      end,
	}, nil
}

// resolveInterval определяет проверяемый интервал из запроса
// Явные времена (оба) побеждают слот, иначе интервал берётся из словаря слотов
func resolveInterval(req *Request) (types.TimeString, types.TimeString, error) {
	if req.StartTime != nil && req.EndTime != nil {
		start, err := types.NewTimeStringFromString(strings.TrimSpace(*req.StartTime))
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrInvalidTimes, err)
		}
		end, err := types.NewTimeStringFromString(strings.TrimSpace(*req.EndTime))
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrInvalidTimes, err)
		}
		if !start.IsBefore(end) {
			return "", "", fmt.Errorf("%w: start must be before end", ErrInvalidTimes)
		}
		return start, end, nil
	}

	if req.SlotKey == nil {
		return "", "", fmt.Errorf("%w: either a slot or explicit times are required", ErrInvalidTimes)
	}

	key := domain.SlotKey(strings.TrimSpace(*req.SlotKey))
	r, err := domain.ResolveSlot(key)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownSlot, key)
	}
	return r.Start, r.End, nil
}
