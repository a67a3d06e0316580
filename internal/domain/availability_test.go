package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avoevodin/hall-booking-service/pkg/types"
)

var testDate = time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

func mkBooking(date time.Time, start, end types.TimeString, status BookingStatus) *Booking {
	return &Booking{
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
		Status:      status,
	}
}

func mkBlock(date time.Time) *HallEvent {
	return &HallEvent{
		EventDate: date,
		EventType: EventTypeBlocked,
		Status:    EventStatusBlocked,
	}
}

func TestOverlaps_Symmetry(t *testing.T) {
	pairs := []struct {
		s1, e1, s2, e2 types.TimeString
	}{
		{"10:00", "14:00", "12:00", "16:00"},
		{"10:00", "14:00", "14:00", "18:00"},
		{"10:00", "18:00", "12:00", "13:00"},
		{"08:00", "09:00", "20:00", "22:00"},
	}

	for _, p := range pairs {
		assert.Equal(t,
			Overlaps(p.s1, p.e1, p.s2, p.e2),
			Overlaps(p.s2, p.e2, p.s1, p.e1),
			"overlap must be symmetric for [%s,%s) vs [%s,%s)", p.s1, p.e1, p.s2, p.e2)
	}
}

func TestOverlaps_HalfOpenBoundary(t *testing.T) {
	// Общая граница — не пересечение
	assert.False(t, Overlaps("10:00", "14:00", "14:00", "18:00"))
	assert.False(t, Overlaps("14:00", "18:00", "10:00", "14:00"))

	// Минимальное реальное пересечение
	assert.True(t, Overlaps("10:00", "14:01", "14:00", "18:00"))

	// Вложенность
	assert.True(t, Overlaps("10:00", "18:00", "12:00", "13:00"))
}

func TestCheckConflict_EmptyDay(t *testing.T) {
	res := CheckConflict(testDate, "10:00", "14:00", nil, nil)
	assert.True(t, res.Available)
	assert.False(t, res.Conflicting)
	assert.Equal(t, 0, res.BookingCount)
}

func TestCheckConflict_BoundaryDoesNotConflict(t *testing.T) {
	existing := []*Booking{
		mkBooking(testDate, "10:00", "14:00", StatusConfirmed),
	}

	res := CheckConflict(testDate, "14:00", "18:00", existing, nil)
	assert.True(t, res.Available)
	assert.False(t, res.Conflicting)
	assert.Equal(t, 1, res.BookingCount)
}

func TestCheckConflict_OverlapRejected(t *testing.T) {
	existing := []*Booking{
		mkBooking(testDate, "10:00", "14:00", StatusPending),
	}

	res := CheckConflict(testDate, "12:00", "16:00", existing, nil)
	assert.False(t, res.Available)
	assert.True(t, res.Conflicting)
}

func TestCheckConflict_CapacityCeiling(t *testing.T) {
	existing := []*Booking{
		mkBooking(testDate, "10:00", "14:00", StatusPending),
		mkBooking(testDate, "14:00", "18:00", StatusConfirmed),
	}

	// Третий кандидат недоступен даже без пересечения
	res := CheckConflict(testDate, "18:00", "22:00", existing, nil)
	assert.False(t, res.Available)
	assert.False(t, res.Conflicting)
	assert.Equal(t, 2, res.BookingCount)
}

func TestCheckConflict_InactiveBookingsIgnored(t *testing.T) {
	existing := []*Booking{
		mkBooking(testDate, "10:00", "14:00", StatusCancelled),
		mkBooking(testDate, "10:00", "14:00", StatusCompleted),
	}

	res := CheckConflict(testDate, "10:00", "14:00", existing, nil)
	assert.True(t, res.Available)
	assert.False(t, res.Conflicting)
	assert.Equal(t, 0, res.BookingCount)
}

func TestCheckConflict_OtherDateIgnored(t *testing.T) {
	otherDate := testDate.AddDate(0, 0, 1)
	existing := []*Booking{
		mkBooking(otherDate, "10:00", "14:00", StatusConfirmed),
	}

	res := CheckConflict(testDate, "10:00", "14:00", existing, nil)
	assert.True(t, res.Available)
	assert.Equal(t, 0, res.BookingCount)
}

func TestCheckConflict_BlockedDayOverride(t *testing.T) {
	events := []*HallEvent{mkBlock(testDate)}

	// Пустой день, но заблокирован
	res := CheckConflict(testDate, "10:00", "14:00", nil, events)
	assert.False(t, res.Available)
	assert.Equal(t, 0, res.BookingCount)

	// Снятая блокировка не действует
	removed := mkBlock(testDate)
	removed.Status = EventStatusRemoved
	res = CheckConflict(testDate, "10:00", "14:00", nil, []*HallEvent{removed})
	assert.True(t, res.Available)

	// Блокировка другой даты не действует
	res = CheckConflict(testDate, "10:00", "14:00", nil, []*HallEvent{mkBlock(testDate.AddDate(0, 0, 2))})
	assert.True(t, res.Available)
}

func TestCheckConflict_Idempotent(t *testing.T) {
	existing := []*Booking{
		mkBooking(testDate, "10:00", "14:00", StatusPending),
	}
	events := []*HallEvent{mkBlock(testDate.AddDate(0, 0, 1))}

	first := CheckConflict(testDate, "12:00", "16:00", existing, events)
	second := CheckConflict(testDate, "12:00", "16:00", existing, events)
	assert.Equal(t, first, second)
}
