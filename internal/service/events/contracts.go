package events

import (
	"context"

	"github.com/avoevodin/hall-booking-service/internal/domain"
)

// EventRepository интерфейс репозитория событий календаря
type EventRepository interface {
	Create(ctx context.Context, e *domain.HallEvent) (*domain.HallEvent, error)
	GetByID(ctx context.Context, id int64) (*domain.HallEvent, error)
	GetWithFilter(ctx context.Context, filter domain.EventsFilter) ([]*domain.HallEvent, error)
	HasActiveBlock(ctx context.Context, date string) (bool, error)
	Remove(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
