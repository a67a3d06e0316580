package domain

import "time"

// EventType тип события календаря
type EventType string

const (
	// EventTypeBlocked дата закрыта администратором для новых бронирований
	EventTypeBlocked EventType = "blocked"
)

// EventStatus статус события календаря
type EventStatus string

const (
	EventStatusBlocked EventStatus = "blocked"
	EventStatusRemoved EventStatus = "removed"
)

// HallEvent represents an admin-created calendar marker, independent of bookings
// A blocking event makes its date unavailable regardless of booking count
type HallEvent struct {
	ID        int64
	EventDate time.Time
	EventType EventType
	Status    EventStatus
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the event makes its date unavailable
func (e *HallEvent) IsBlocking() bool {
	return e.EventType == EventTypeBlocked && e.Status == EventStatusBlocked
}

// EventsFilter фильтр для выборки событий календаря
type EventsFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	OnlyActive bool // Только события со статусом blocked
}

// DayIsBlocked проверяет, есть ли среди событий активная блокировка на указанную дату
func DayIsBlocked(date time.Time, events []*HallEvent) bool {
	for _, e := range events {
		if e.IsBlocking() && SameDay(e.EventDate, date) {
			return true
		}
	}
	return false
}
