package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	pkgRepo "github.com/avoevodin/hall-booking-service/internal/infra/storage/pkgcatalog"
	"github.com/avoevodin/hall-booking-service/pkg/ptr"
	"github.com/avoevodin/hall-booking-service/pkg/types"
)

// --- фейки контрактов ---

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = b
	return b, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeEventRepo struct {
	events []*domain.HallEvent
}

func (f *fakeEventRepo) GetWithFilter(_ context.Context, _ domain.EventsFilter) ([]*domain.HallEvent, error) {
	return f.events, nil
}

type fakePackageRepo struct {
	packages map[int64]*domain.Package
}

func (f *fakePackageRepo) GetByID(_ context.Context, id int64) (*domain.Package, error) {
	if p, ok := f.packages[id]; ok {
		return p, nil
	}
	return nil, pkgRepo.ErrPackageNotFound
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- helpers ---

var testNow = time.Date(2025, 11, 15, 12, 30, 0, 0, time.UTC)

func newTestUseCase(bookings *fakeBookingRepo, events *fakeEventRepo, packages *fakePackageRepo) *UseCase {
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	if events == nil {
		events = &fakeEventRepo{}
	}
	if packages == nil {
		packages = &fakePackageRepo{}
	}

	uc := NewUseCase(bookings, events, packages, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		FullName:    "Анна Петрова",
		Mobile:      "+7 912 345-67-89",
		BookingDate: "2025-11-20",
		SlotKey:     ptr.Ptr("full_day"),
		GuestCount:  50,
	}
}

// --- тесты ---

func TestExecute_FullDayRoundTrip(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, nil, nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("18:00"), resp.EndTime)
	assert.Equal(t, "pending", resp.Status)
	assert.NotEmpty(t, resp.Reference)
	require.NotNil(t, resp.SlotKey)
	assert.Equal(t, "full_day", *resp.SlotKey)
}

func TestExecute_AdminCreatesConfirmed(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	req := validRequest()
	req.AsAdmin = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestExecute_CollectsAllValidationErrors(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	req := &Request{
		FullName:    " A ",
		Mobile:      "123",
		BookingDate: "20-11-2025",
		SlotKey:     ptr.Ptr("midnight"),
		GuestCount:  0,
		PackageID:   ptr.Ptr(int64(-1)),
	}

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	// Все ошибки собраны, порядок соответствует порядку проверок
	assert.True(t, verrs.HasCode(CodeMissingField))
	assert.True(t, verrs.HasCode(CodeInvalidDateFormat))
	assert.True(t, verrs.HasCode(CodeUnknownSlot))
	assert.True(t, verrs.HasCode(CodeInvalidGuestCount))
	assert.True(t, verrs.HasCode(CodeInvalidPackageReference))
	assert.Equal(t, "full_name", verrs[0].Field)
}

func TestExecute_PastDateBoundary(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	// Вчера — отказ
	req := validRequest()
	req.BookingDate = "2025-11-14"
	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.HasCode(CodePastDate))

	// Сегодня — проходит (граница включительно)
	req = validRequest()
	req.BookingDate = "2025-11-15"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_TodayAcceptedInZoneBehindUTC(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	// Дата из формы парсится в UTC, а часы сервера идут в локальной зоне.
	// Сравнение календарных дней не должно зависеть от зоны: в UTC-5
	// сегодняшняя дата обязана проходить так же, как в UTC
	uc.timeProvider = &fixedTimeProvider{
		now: time.Date(2025, 11, 15, 10, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60)),
	}

	req := validRequest()
	req.BookingDate = "2025-11-15"
	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	// Вчерашняя дата по-прежнему отклоняется
	req = validRequest()
	req.BookingDate = "2025-11-14"
	_, err = uc.Execute(context.Background(), req)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.HasCode(CodePastDate))
}

func TestExecute_NotesTooLong(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	req := validRequest()
	req.Notes = ptr.Ptr(strings.Repeat("а", domain.MaxNotesLength+1))

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.HasCode(CodeFieldTooLong))

	// Ровно на границе — проходит
	req = validRequest()
	req.Notes = ptr.Ptr(strings.Repeat("а", domain.MaxNotesLength))
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_UnknownSlotNoFallback(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	req := validRequest()
	req.SlotKey = ptr.Ptr("weekend_special")

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.HasCode(CodeUnknownSlot))
}

func TestExecute_ExplicitTimesWinOverSlot(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, nil, nil)

	req := validRequest()
	req.SlotKey = ptr.Ptr("short_duration")
	req.StartTime = ptr.Ptr("11:00")
	req.EndTime = ptr.Ptr("13:00")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("11:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("13:00"), resp.EndTime)
	// short_duration допускает переопределение, ключ сохраняется
	require.NotNil(t, resp.SlotKey)
	assert.Equal(t, "short_duration", *resp.SlotKey)
}

func TestExecute_StartNotBeforeEnd(t *testing.T) {
	uc := newTestUseCase(nil, nil, nil)

	req := validRequest()
	req.SlotKey = nil
	req.StartTime = ptr.Ptr("18:00")
	req.EndTime = ptr.Ptr("10:00")

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.HasCode(CodeStartNotBeforeEnd))
}

func TestExecute_ConflictRejected(t *testing.T) {
	date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{
		existing: []*domain.Booking{
			{BookingDate: date, StartTime: "10:00", EndTime: "14:00", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(repo, nil, nil)

	req := validRequest()
	req.SlotKey = ptr.Ptr("full_day") // 10:00-18:00 пересекает 10:00-14:00

	_, err := uc.Execute(context.Background(), req)
	assert.True(t, errors.Is(err, ErrSlotNotAvailable))
}

func TestExecute_CapacityCeiling(t *testing.T) {
	date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{
		existing: []*domain.Booking{
			{BookingDate: date, StartTime: "10:00", EndTime: "14:00", Status: domain.StatusPending},
			{BookingDate: date, StartTime: "14:00", EndTime: "18:00", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(repo, nil, nil)

	// Непересекающийся интервал, но ёмкость дня исчерпана
	req := validRequest()
	req.SlotKey = ptr.Ptr("night")

	_, err := uc.Execute(context.Background(), req)
	assert.True(t, errors.Is(err, ErrSlotNotAvailable))
}

func TestExecute_BlockedDateRejected(t *testing.T) {
	date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	events := &fakeEventRepo{
		events: []*domain.HallEvent{
			{EventDate: date, EventType: domain.EventTypeBlocked, Status: domain.EventStatusBlocked},
		},
	}
	uc := newTestUseCase(nil, events, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.True(t, errors.Is(err, ErrDateBlocked))
}

func TestExecute_PackageDenormalized(t *testing.T) {
	packages := &fakePackageRepo{
		packages: map[int64]*domain.Package{
			7: {ID: 7, Name: "Свадебный пакет", Price: 120000},
		},
	}
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, nil, packages)

	req := validRequest()
	req.PackageID = ptr.Ptr(int64(7))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.PackageName)
	assert.Equal(t, "Свадебный пакет", *resp.PackageName)
	require.NotNil(t, resp.PackagePrice)
	assert.Equal(t, 120000.0, *resp.PackagePrice)
}

func TestExecute_UnknownPackageRejected(t *testing.T) {
	uc := newTestUseCase(nil, nil, &fakePackageRepo{})

	req := validRequest()
	req.PackageID = ptr.Ptr(int64(99))

	_, err := uc.Execute(context.Background(), req)
	assert.True(t, errors.Is(err, ErrPackageNotFound))
}
