package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/avoevodin/hall-booking-service/internal/api/handlers"
	"github.com/avoevodin/hall-booking-service/internal/domain"
	"github.com/avoevodin/hall-booking-service/internal/service/bookings"
	"github.com/avoevodin/hall-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/admin/bookings
//
// Параметры запроса:
// - startDate, endDate: период в формате YYYY-MM-DD (на одну дату укажите обе одинаковыми)
// - status: фильтр по статусу (pending/confirmed/cancelled/completed)
// - includeInactive=true: включить отменённые и завершённые
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListBookingsRequest{
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if v := query.Get("startDate"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid startDate: %s", v)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &parsed
	}

	if v := query.Get("endDate"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid endDate: %s", v)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &parsed
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
