package models

import (
	"errors"
	"time"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	"github.com/avoevodin/hall-booking-service/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateBookingRequest частичное обновление бронирования
// nil-поля не изменяются
type UpdateBookingRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	Mobile      *string `json:"mobile,omitempty"`
	GuestCount  *int    `json:"guestCount,omitempty"`
	BookingDate *string `json:"bookingDate,omitempty"` // "2025-10-15"
	StartTime   *string `json:"startTime,omitempty"`   // "10:00"
	EndTime     *string `json:"endTime,omitempty"`     // "14:00"
	SlotKey     *string `json:"slot,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	Reference   string `json:"reference"`
	FullName    string `json:"fullName"`
	Mobile      string `json:"mobile"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`     // "14:00"
	SlotKey     *string `json:"slot,omitempty"`
	Status      string `json:"status"`
	GuestCount  int    `json:"guestCount"`

	// Денормализованные данные пакета
	PackageID    *int64   `json:"packageId,omitempty"`
	PackageName  *string  `json:"packageName,omitempty"`
	PackagePrice *float64 `json:"packagePrice,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		Reference:    b.Reference,
		FullName:     b.FullName,
		Mobile:       b.Mobile,
		BookingDate:  b.BookingDate.Format(domain.DateFormat),
		StartTime:    b.StartTime.String(),
		EndTime:      b.EndTime.String(),
		Status:       string(b.Status),
		GuestCount:   b.GuestCount,
		PackageID:    b.PackageID,
		PackageName:  b.PackageName,
		PackagePrice: b.PackagePrice,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.SlotKey != nil {
		s := string(*b.SlotKey)
		resp.SlotKey = &s
	}

	resp.CancellationReason = b.CancellationReason
	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !domain.ValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ToDomainUpdate конвертирует request в domain обновление
// Дата и времена валидируются синтаксически, семантика расписания
// проверяется сервисом
func (r *UpdateBookingRequest) ToDomainUpdate() (domain.BookingUpdate, error) {
	upd := domain.BookingUpdate{
		FullName:   r.FullName,
		Mobile:     r.Mobile,
		GuestCount: r.GuestCount,
		Notes:      r.Notes,
	}

	if r.BookingDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.BookingDate)
		if err != nil {
			return upd, err
		}
		upd.BookingDate = &parsed
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return upd, err
		}
		upd.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return upd, err
		}
		upd.EndTime = &end
	}

	if r.SlotKey != nil {
		key := domain.SlotKey(*r.SlotKey)
		if _, err := domain.ResolveSlot(key); err != nil {
			return upd, err
		}
		upd.SlotKey = &key
	}

	return upd, nil
}
