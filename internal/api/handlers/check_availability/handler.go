package check_availability

import (
	"errors"
	"net/http"

	"github.com/avoevodin/hall-booking-service/internal/api/handlers"
	checkAvailability "github.com/avoevodin/hall-booking-service/internal/usecase/check_availability"
)

const (
	msgInvalidDate  = "некорректная дата, ожидается YYYY-MM-DD"
	msgUnknownSlot  = "неизвестный слот"
	msgInvalidTimes = "некорректный временной интервал"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle GET /api/v1/availability?date=2025-10-15&slot=morning
// Handle GET /api/v1/availability?date=2025-10-15&startTime=10:00&endTime=14:00
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &checkAvailability.Request{
		Date: query.Get("date"),
	}
	if v := query.Get("slot"); v != "" {
		req.SlotKey = &v
	}
	if v := query.Get("startTime"); v != "" {
		req.StartTime = &v
	}
	if v := query.Get("endTime"); v != "" {
		req.EndTime = &v
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date: %s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, checkAvailability.ErrUnknownSlot):
			h.logger.Warn("GET /availability - Unknown slot: %v", req.SlotKey)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, checkAvailability.ErrInvalidTimes):
			h.logger.Warn("GET /availability - Invalid times: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidTimes)

		default:
			h.logger.Error("GET /availability - Failed to check availability: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
