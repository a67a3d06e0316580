package create_booking

import (
	"errors"
	"net/http"

	"github.com/avoevodin/hall-booking-service/internal/api/handlers"
	createBooking "github.com/avoevodin/hall-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "форма заполнена с ошибками"
	msgSlotNotAvailable   = "выбранный временной интервал недоступен"
	msgDateBlocked        = "выбранная дата закрыта для бронирования"
	msgPackageNotFound    = "пакет не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	asAdmin bool
	logger  Logger
}

// NewHandler создает обработчик клиентской формы бронирования
func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// NewAdminHandler создает обработчик админского создания бронирования
// Бронирование создаётся сразу подтверждённым
func NewAdminHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, asAdmin: true, logger: logger}
}

// Handle POST /api/v1/bookings
// Handle POST /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(h.asAdmin))
	if err != nil {
		var verrs createBooking.ValidationErrors

		switch {
		case errors.As(err, &verrs):
			h.logger.Warn("POST /bookings - Validation failed: %d errors", len(verrs))
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, validationResponse(verrs))

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s", req.BookingDate)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrDateBlocked):
			h.logger.Warn("POST /bookings - Date blocked: date=%s", req.BookingDate)
			handlers.RespondError(w, http.StatusConflict, msgDateBlocked)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: package_id=%v", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, error=%v", req.BookingDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, ref=%s", result.ID, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// validationResponse конвертирует ошибки валидации в HTTP формат
// Порядок ошибок сохраняется: первый элемент — самая приоритетная
func validationResponse(verrs createBooking.ValidationErrors) handlers.ValidationErrorResponse {
	resp := handlers.ValidationErrorResponse{
		Error:  msgValidationFailed,
		Errors: make([]handlers.FieldError, 0, len(verrs)),
	}
	for _, fe := range verrs {
		resp.Errors = append(resp.Errors, handlers.FieldError{
			Field:   fe.Field,
			Code:    fe.Code,
			Message: fe.Message,
		})
	}
	return resp
}
