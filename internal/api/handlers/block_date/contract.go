package block_date

import (
	"context"

	"github.com/avoevodin/hall-booking-service/internal/service/events/models"
)

type EventsService interface {
	Block(ctx context.Context, req *models.BlockDateRequest) (*models.EventResponse, error)
	Unblock(ctx context.Context, id int64) error
	List(ctx context.Context, req *models.ListEventsRequest) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
