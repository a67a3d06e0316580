package create_booking

import (
	"github.com/avoevodin/hall-booking-service/internal/domain"
	createBooking "github.com/avoevodin/hall-booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FullName    string  `json:"fullName"`
	Mobile      string  `json:"mobile"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	Slot        *string `json:"slot,omitempty"`
	StartTime   *string `json:"startTime,omitempty"` // "10:00", перекрывает слот
	EndTime     *string `json:"endTime,omitempty"`   // "14:00"
	GuestCount  int     `json:"guestCount"`
	PackageID   *int64  `json:"packageId,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	Reference   string  `json:"reference"`
	FullName    string  `json:"fullName"`
	Mobile      string  `json:"mobile"`
	BookingDate string  `json:"bookingDate"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Slot        *string `json:"slot,omitempty"`
	Status      string  `json:"status"`
	GuestCount  int     `json:"guestCount"`

	PackageID    *int64   `json:"packageId,omitempty"`
	PackageName  *string  `json:"packageName,omitempty"`
	PackagePrice *float64 `json:"packagePrice,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Валидация формы целиком живёт в use case, здесь только перенос полей
func (r *CreateBookingRequest) ToUseCaseRequest(asAdmin bool) *createBooking.Request {
	return &createBooking.Request{
		FullName:    r.FullName,
		Mobile:      r.Mobile,
		BookingDate: r.BookingDate,
		SlotKey:     r.Slot,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		GuestCount:  r.GuestCount,
		PackageID:   r.PackageID,
		Notes:       r.Notes,
		AsAdmin:     asAdmin,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		Reference:    resp.Reference,
		FullName:     resp.FullName,
		Mobile:       resp.Mobile,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Slot:         resp.SlotKey,
		Status:       resp.Status,
		GuestCount:   resp.GuestCount,
		PackageID:    resp.PackageID,
		PackageName:  resp.PackageName,
		PackagePrice: resp.PackagePrice,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    resp.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
