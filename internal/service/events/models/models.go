package models

import (
	"time"

	"github.com/avoevodin/hall-booking-service/internal/domain"
)

// Request модели

// BlockDateRequest запрос на блокировку даты
type BlockDateRequest struct {
	Date   string  `json:"date"` // "2025-10-15"
	Reason *string `json:"reason,omitempty"`
}

// ListEventsRequest запрос на получение событий календаря
type ListEventsRequest struct {
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	OnlyActive bool       `json:"onlyActive,omitempty"`
}

// Response модели

// EventResponse ответ с данными события
type EventResponse struct {
	ID        int64     `json:"id"`
	EventDate string    `json:"eventDate"` // "2025-10-15"
	EventType string    `json:"eventType"`
	Status    string    `json:"status"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EventListResponse ответ со списком событий
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.HallEvent) *EventResponse {
	if e == nil {
		return nil
	}
	return &EventResponse{
		ID:        e.ID,
		EventDate: e.EventDate.Format(domain.DateFormat),
		EventType: string(e.EventType),
		Status:    string(e.Status),
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// FromDomainEventList конвертирует список domain моделей в DTO
func FromDomainEventList(events []*domain.HallEvent) *EventListResponse {
	result := &EventListResponse{
		Events: make([]EventResponse, 0, len(events)),
	}
	for _, e := range events {
		result.Events = append(result.Events, *FromDomainEvent(e))
	}
	return result
}
