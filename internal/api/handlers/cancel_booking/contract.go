package cancel_booking

import (
	"context"

	"github.com/avoevodin/hall-booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
