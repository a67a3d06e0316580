package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	bookingRepo "github.com/avoevodin/hall-booking-service/internal/infra/storage/booking"
	"github.com/avoevodin/hall-booking-service/internal/service/bookings/models"
	"github.com/avoevodin/hall-booking-service/pkg/ptr"
)

type fakeBookingRepo struct {
	byID       map[int64]*domain.Booking
	byRef      map[string]*domain.Booking
	all        []*domain.Booking
	statusSet  map[int64]domain.BookingStatus
	cancelled  map[int64]string
	updateCall *domain.BookingUpdate
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byID:      map[int64]*domain.Booking{},
		byRef:     map[string]*domain.Booking{},
		statusSet: map[int64]domain.BookingStatus{},
		cancelled: map[int64]string{},
	}
	for _, b := range bookings {
		f.byID[b.ID] = b
		f.byRef[b.Reference] = b
		f.all = append(f.all, b)
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, ref string) (*domain.Booking, error) {
	if b, ok := f.byRef[ref]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.all, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.statusSet[id] = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelled[id] = reason
	return nil
}

func (f *fakeBookingRepo) UpdateDetails(_ context.Context, id int64, upd domain.BookingUpdate) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	f.updateCall = &upd
	return b, nil
}

type fakeEventRepo struct {
	events []*domain.HallEvent
}

func (f *fakeEventRepo) GetWithFilter(_ context.Context, _ domain.EventsFilter) ([]*domain.HallEvent, error) {
	return f.events, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

func pendingBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		Reference:   "ref-1",
		FullName:    "Анна Петрова",
		Mobile:      "79123456789",
		BookingDate: testDate,
		StartTime:   "10:00",
		EndTime:     "14:00",
		Status:      domain.StatusPending,
		GuestCount:  40,
	}
}

func newService(repo *fakeBookingRepo, events *fakeEventRepo) *Service {
	if events == nil {
		events = &fakeEventRepo{}
	}
	return NewService(repo, events, &fakeTxManager{}, nopLogger{})
}

func TestGetByReference(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newService(repo, nil)

	resp, err := svc.GetByReference(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-11-20", resp.BookingDate)

	_, err = svc.GetByReference(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrBookingNotFound))
}

func TestConfirm(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newService(repo, nil)

	require.NoError(t, svc.Confirm(context.Background(), 1))
	assert.Equal(t, domain.StatusConfirmed, repo.statusSet[1])
}

func TestConfirm_OnlyPending(t *testing.T) {
	b := pendingBooking(1)
	b.Status = domain.StatusCancelled
	svc := newService(newFakeBookingRepo(b), nil)

	err := svc.Confirm(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrCannotConfirm))
}

func TestCancel(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "клиент передумал"})
	require.NoError(t, err)
	assert.Equal(t, "клиент передумал", repo.cancelled[1])
}

func TestCancel_CompletedRejected(t *testing.T) {
	b := pendingBooking(1)
	b.Status = domain.StatusCompleted
	svc := newService(newFakeBookingRepo(b), nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
	assert.True(t, errors.Is(err, ErrCannotCancel))
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CancellationReason: strings.Repeat("а", domain.MaxCancellationReasonLength+1),
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Empty(t, repo.cancelled)

	// Ровно на границе — проходит
	err = svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CancellationReason: strings.Repeat("а", domain.MaxCancellationReasonLength),
	})
	require.NoError(t, err)
}

func TestUpdateDetails_NonScheduleFields(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newService(repo, nil)

	_, err := svc.UpdateDetails(context.Background(), 1, &models.UpdateBookingRequest{
		GuestCount: ptr.Ptr(60),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updateCall)
	assert.Equal(t, 60, *repo.updateCall.GuestCount)
	assert.Nil(t, repo.updateCall.BookingDate)
}

func TestUpdateDetails_RescheduleChecksConflicts(t *testing.T) {
	mine := pendingBooking(1)
	other := pendingBooking(2)
	other.StartTime = "14:00"
	other.EndTime = "18:00"

	repo := newFakeBookingRepo(mine, other)
	svc := newService(repo, nil)

	// Новый интервал пересекает чужое бронирование
	_, err := svc.UpdateDetails(context.Background(), 1, &models.UpdateBookingRequest{
		StartTime: ptr.Ptr("13:00"),
		EndTime:   ptr.Ptr("15:00"),
	})
	assert.True(t, errors.Is(err, ErrSlotNotAvailable))
}

func TestUpdateDetails_SelfExcludedFromConflict(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newService(repo, nil)

	// Сдвиг внутри собственного интервала не конфликтует сам с собой
	_, err := svc.UpdateDetails(context.Background(), 1, &models.UpdateBookingRequest{
		StartTime: ptr.Ptr("11:00"),
		EndTime:   ptr.Ptr("13:00"),
	})
	assert.NoError(t, err)
}

func TestUpdateDetails_BlockedDateRejected(t *testing.T) {
	newDate := time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC)
	events := &fakeEventRepo{
		events: []*domain.HallEvent{
			{EventDate: newDate, EventType: domain.EventTypeBlocked, Status: domain.EventStatusBlocked},
		},
	}
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newService(repo, events)

	_, err := svc.UpdateDetails(context.Background(), 1, &models.UpdateBookingRequest{
		BookingDate: ptr.Ptr("2025-11-25"),
	})
	assert.True(t, errors.Is(err, ErrDateBlocked))
}

func TestUpdateDetails_SlotRewritesTimes(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newService(repo, nil)

	_, err := svc.UpdateDetails(context.Background(), 1, &models.UpdateBookingRequest{
		SlotKey: ptr.Ptr("evening"),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updateCall)
	require.NotNil(t, repo.updateCall.StartTime)
	assert.Equal(t, "14:00", repo.updateCall.StartTime.String())
	assert.Equal(t, "18:00", repo.updateCall.EndTime.String())
}

func TestUpdateDetails_InvalidInput(t *testing.T) {
	svc := newService(newFakeBookingRepo(pendingBooking(1)), nil)

	_, err := svc.UpdateDetails(context.Background(), 1, &models.UpdateBookingRequest{
		BookingDate: ptr.Ptr("25.11.2025"),
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.UpdateDetails(context.Background(), 1, &models.UpdateBookingRequest{
		StartTime: ptr.Ptr("18:00"),
		EndTime:   ptr.Ptr("10:00"),
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
