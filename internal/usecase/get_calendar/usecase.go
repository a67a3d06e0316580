package get_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/avoevodin/hall-booking-service/internal/domain"
)

// UseCase use case построения месячного календаря
// Одна выборка за весь диапазон сетки (включая overflow-дни соседних месяцев),
// классификация — чистая доменная функция
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

// Execute выполняет use case построения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: year=%d, month=%d, admin=%t", req.Year, req.Month, req.Admin)

	// 1. Валидация периода
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, req.Month)
	}
	if req.Year < 2000 || req.Year > 2200 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidPeriod, req.Year)
	}

	month := time.Month(req.Month)

	// 2. Выборка бронирований и событий за весь диапазон сетки
	gridStart, gridEnd := domain.GridRange(req.Year, month)

	bookingsFilter := domain.BookingsFilter{
		StartDate: &gridStart,
		EndDate:   &gridEnd,
	}
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, bookingsFilter)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	eventsFilter := domain.EventsFilter{
		StartDate:  &gridStart,
		EndDate:    &gridEnd,
		OnlyActive: true,
	}
	events, err := uc.eventRepo.GetWithFilter(ctx, eventsFilter)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get events: %v", err)
		return nil, fmt.Errorf("%w: failed to get events: %v", ErrInternal, err)
	}

	// 3. Построение сетки и проекция статусов
	cells := domain.MonthGrid(req.Year, month, bookings, events)

	days := make([]Day, 0, len(cells))
	for _, cell := range cells {
		day := Day{
			Date:    cell.Date,
			InMonth: cell.InMonth,
		}
		if req.Admin {
			day.Status = string(cell.Classification.AdminStatus())
			day.ActiveCount = cell.Classification.ActiveCount
			day.Blocked = cell.Classification.Blocked
			flags := cell.Classification.Flags
			day.Flags = &flags
		} else {
			day.Status = string(cell.Classification.PublicStatus())
		}
		days = append(days, day)
	}

	return &Response{
		Year:  req.Year,
		Month: req.Month,
		Days:  days,
	}, nil
}
