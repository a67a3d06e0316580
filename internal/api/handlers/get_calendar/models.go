package get_calendar

import (
	"github.com/avoevodin/hall-booking-service/internal/domain"
	getCalendar "github.com/avoevodin/hall-booking-service/internal/usecase/get_calendar"
)

// DayResponse одна ячейка месячной сетки
type DayResponse struct {
	Date    string `json:"date"` // "2025-10-15"
	InMonth bool   `json:"inMonth"`
	Status  string `json:"status"`

	// Только для админской проекции
	ActiveCount *int           `json:"activeCount,omitempty"`
	Blocked     *bool          `json:"blocked,omitempty"`
	Slots       *SlotsResponse `json:"slots,omitempty"`
}

// SlotsResponse признаки занятости именованных слотов
type SlotsResponse struct {
	Morning       bool `json:"morning"`
	Evening       bool `json:"evening"`
	Night         bool `json:"night"`
	ShortDuration bool `json:"shortDuration"`
	FullDay       bool `json:"fullDay"`
}

// CalendarResponse HTTP response model
// Сетка выровнена по неделям, воскресенье — первый день
type CalendarResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	result := &CalendarResponse{
		Year:  resp.Year,
		Month: resp.Month,
		Days:  make([]DayResponse, 0, len(resp.Days)),
	}

	for _, d := range resp.Days {
		day := DayResponse{
			Date:    d.Date.Format(domain.DateFormat),
			InMonth: d.InMonth,
			Status:  d.Status,
		}
		if d.Flags != nil {
			count := d.ActiveCount
			blocked := d.Blocked
			day.ActiveCount = &count
			day.Blocked = &blocked
			day.Slots = &SlotsResponse{
				Morning:       d.Flags.Morning,
				Evening:       d.Flags.Evening,
				Night:         d.Flags.Night,
				ShortDuration: d.Flags.ShortDuration,
				FullDay:       d.Flags.FullDay,
			}
		}
		result.Days = append(result.Days, day)
	}

	return result
}
