package check_availability

import (
	checkAvailability "github.com/avoevodin/hall-booking-service/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available    bool   `json:"available"`
	Conflicting  bool   `json:"conflicting"`
	Blocked      bool   `json:"blocked"`
	BookingCount int    `json:"bookingCount"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available:    resp.Available,
		Conflicting:  resp.Conflicting,
		Blocked:      resp.Blocked,
		BookingCount: resp.BookingCount,
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
	}
}
