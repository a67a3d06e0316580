package get_slots

import (
	"net/http"

	"github.com/avoevodin/hall-booking-service/internal/api/handlers"
	"github.com/avoevodin/hall-booking-service/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SlotResponse один именованный слот словаря
type SlotResponse struct {
	Key              string `json:"key"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	AllowsCustomTime bool   `json:"allowsCustomTime"`
}

// SlotListResponse словарь слотов для формы бронирования
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/slots
// Словарь статичен, поэтому обработчик читает его напрямую из домена
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	keys := domain.CatalogSlots()

	resp := SlotListResponse{
		Slots: make([]SlotResponse, 0, len(keys)),
	}
	for _, key := range keys {
		rng, err := domain.ResolveSlot(key)
		if err != nil {
			h.logger.Error("GET /slots - Failed to resolve slot %q: %v", key, err)
			handlers.RespondInternalError(w)
			return
		}
		resp.Slots = append(resp.Slots, SlotResponse{
			Key:              string(key),
			StartTime:        rng.Start.String(),
			EndTime:          rng.End.String(),
			AllowsCustomTime: key.AllowsCustomTimes(),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
