package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avoevodin/hall-booking-service/internal/api/handlers"
	getCalendar "github.com/avoevodin/hall-booking-service/internal/usecase/get_calendar"
)

const (
	msgInvalidPeriod = "некорректный год или месяц"
)

type Handler struct {
	useCase GetCalendarUseCase
	admin   bool
	logger  Logger
}

// NewHandler создает обработчик клиентского календаря (три статуса)
func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// NewAdminHandler создает обработчик админского календаря
// (четыре статуса и признаки занятости слотов)
func NewAdminHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, admin: true, logger: logger}
}

// Handle GET /api/v1/calendar/{year}/{month}
// Handle GET /api/v1/admin/calendar/{year}/{month}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid year: %s", vars["year"])
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid month: %s", vars["month"])
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCalendar.Request{
		Year:  year,
		Month: month,
		Admin: h.admin,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidPeriod):
			h.logger.Warn("GET /calendar - Invalid period: year=%d, month=%d", year, month)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar: year=%d, month=%d, error=%v", year, month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
