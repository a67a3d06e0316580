package get_calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoevodin/hall-booking-service/internal/domain"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	filter   *domain.BookingsFilter
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = &filter
	return f.bookings, nil
}

type fakeEventRepo struct {
	events []*domain.HallEvent
}

func (f *fakeEventRepo) GetWithFilter(_ context.Context, _ domain.EventsFilter) ([]*domain.HallEvent, error) {
	return f.events, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_PublicGridShape(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeEventRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 11})
	require.NoError(t, err)

	// Ноябрь 2025: сетка 6 недель, начинается с воскресенья 26 октября
	assert.Len(t, resp.Days, 42)
	assert.Equal(t, time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC), resp.Days[0].Date)
	assert.Equal(t, time.Weekday(0), resp.Days[0].Date.Weekday())

	inMonth := 0
	for _, d := range resp.Days {
		if d.InMonth {
			inMonth++
		}
		assert.Equal(t, "available", d.Status)
		assert.Nil(t, d.Flags)
	}
	assert.Equal(t, 30, inMonth)
}

func TestExecute_FetchesWholeGridRange(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := NewUseCase(repo, &fakeEventRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 11})
	require.NoError(t, err)

	// Выборка покрывает overflow-дни, а не только сам месяц
	require.NotNil(t, repo.filter)
	assert.Equal(t, time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC), *repo.filter.StartDate)
	assert.Equal(t, time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC), *repo.filter.EndDate)
}

func TestExecute_StatusProjections(t *testing.T) {
	date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{BookingDate: date, StartTime: "10:00", EndTime: "14:00", Status: domain.StatusConfirmed},
		},
	}
	events := &fakeEventRepo{
		events: []*domain.HallEvent{
			{
				EventDate: time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC),
				EventType: domain.EventTypeBlocked,
				Status:    domain.EventStatusBlocked,
			},
		},
	}

	findDay := func(resp *Response, day int) Day {
		for _, d := range resp.Days {
			if d.InMonth && d.Date.Day() == day {
				return d
			}
		}
		t.Fatalf("day %d not found", day)
		return Day{}
	}

	// Клиентская проекция: одно бронирование = partial, блокировка = full
	uc := NewUseCase(repo, events, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 11})
	require.NoError(t, err)
	assert.Equal(t, "partial", findDay(resp, 20).Status)
	assert.Equal(t, "full", findDay(resp, 21).Status)

	// Админская проекция: confirmed = booked, блокировка = blocked
	resp, err = uc.Execute(context.Background(), &Request{Year: 2025, Month: 11, Admin: true})
	require.NoError(t, err)

	day20 := findDay(resp, 20)
	assert.Equal(t, "booked", day20.Status)
	assert.Equal(t, 1, day20.ActiveCount)
	require.NotNil(t, day20.Flags)
	assert.True(t, day20.Flags.Morning)

	day21 := findDay(resp, 21)
	assert.Equal(t, "blocked", day21.Status)
	assert.True(t, day21.Blocked)
}

func TestExecute_InvalidPeriod(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeEventRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 13})
	assert.True(t, errors.Is(err, ErrInvalidPeriod))

	_, err = uc.Execute(context.Background(), &Request{Year: 1999, Month: 1})
	assert.True(t, errors.Is(err, ErrInvalidPeriod))
}
