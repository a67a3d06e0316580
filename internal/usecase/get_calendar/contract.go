package get_calendar

import (
	"context"

	"github.com/avoevodin/hall-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// EventRepository интерфейс репозитория событий календаря
type EventRepository interface {
	GetWithFilter(ctx context.Context, filter domain.EventsFilter) ([]*domain.HallEvent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
