package block_date

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avoevodin/hall-booking-service/internal/api/handlers"
	"github.com/avoevodin/hall-booking-service/internal/domain"
	"github.com/avoevodin/hall-booking-service/internal/service/events"
	"github.com/avoevodin/hall-booking-service/internal/service/events/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidEventID     = "некорректный ID блокировки"
	msgAlreadyBlocked     = "дата уже заблокирована"
	msgEventNotFound      = "блокировка не найдена"
	msgInvalidFilter      = "некорректные параметры фильтрации"
)

type Handler struct {
	service EventsService
	logger  Logger
}

func NewHandler(service EventsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleBlock POST /api/v1/admin/blocked-dates
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	var req models.BlockDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Block(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocked-dates - Invalid date: %s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, events.ErrAlreadyBlocked):
			h.logger.Warn("POST /admin/blocked-dates - Already blocked: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyBlocked)

		default:
			h.logger.Error("POST /admin/blocked-dates - Failed: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-dates - Blocked: date=%s, event_id=%d", req.Date, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUnblock DELETE /api/v1/admin/blocked-dates/{id}
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/blocked-dates/{id} - Invalid id: %s", vars["id"])
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	if err := h.service.Unblock(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("DELETE /admin/blocked-dates/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgEventNotFound)

		default:
			h.logger.Error("DELETE /admin/blocked-dates/{id} - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-dates/{id} - Unblocked: id=%d", id)
	handlers.RespondNoContent(w)
}

// HandleList GET /api/v1/admin/blocked-dates
//
// Параметры запроса:
// - startDate, endDate: период в формате YYYY-MM-DD
// - onlyActive=true: только действующие блокировки
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListEventsRequest{
		OnlyActive: query.Get("onlyActive") == "true",
	}

	if v := query.Get("startDate"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /admin/blocked-dates - Invalid startDate: %s", v)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &parsed
	}

	if v := query.Get("endDate"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /admin/blocked-dates - Invalid endDate: %s", v)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &parsed
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /admin/blocked-dates - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
