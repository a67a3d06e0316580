package domain

import (
	"time"

	"github.com/avoevodin/hall-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a hall booking request in the system
type Booking struct {
	ID          int64
	Reference   string // публичный код бронирования, по нему клиент обращается в поддержку
	FullName    string
	Mobile      string
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	SlotKey     *SlotKey // именованный слот, из которого получены времена (nil для явных времён)
	Status      BookingStatus
	GuestCount  int

	// Denormalized package data for history
	PackageID    *int64
	PackageName  *string
	PackagePrice *float64

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its time slot
// Only pending and confirmed bookings count toward availability
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking can be confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeUpdated returns true if the booking details can be updated
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsFullDayEquivalent returns true if the booking covers the whole bookable day
// (the canonical full_day window or wider)
func (b *Booking) IsFullDayEquivalent() bool {
	full, err := ResolveSlot(SlotFullDay)
	if err != nil {
		return false
	}
	return !b.StartTime.IsAfter(full.Start) && !b.EndTime.IsBefore(full.End)
}

// ValidStatus проверяет, что статус является одним из допустимых
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// BookingUpdate частичное обновление реквизитов бронирования
// nil-поля не изменяются
type BookingUpdate struct {
	FullName     *string
	Mobile       *string
	GuestCount   *int
	BookingDate  *time.Time
	StartTime    *types.TimeString
	EndTime      *types.TimeString
	SlotKey      *SlotKey
	PackagePrice *float64
	Notes        *string
}

// ChangesSchedule возвращает true, если обновление затрагивает дату или время
// Такие обновления требуют повторной проверки конфликтов
func (u BookingUpdate) ChangesSchedule() bool {
	return u.BookingDate != nil || u.StartTime != nil || u.EndTime != nil || u.SlotKey != nil
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и завершённые бронирования
}

// SameDay проверяет, что две даты относятся к одному и тому же календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateKey возвращает ключ даты YYYY-MM-DD для группировки по дням
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}
