package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	eventRepo "github.com/avoevodin/hall-booking-service/internal/infra/storage/event"
	"github.com/avoevodin/hall-booking-service/internal/service/events/models"
	"github.com/avoevodin/hall-booking-service/pkg/ptr"
)

type fakeEventRepo struct {
	byID      map[int64]*domain.HallEvent
	blocked   map[string]bool
	removed   map[int64]bool
	nextID    int64
	createErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:    map[int64]*domain.HallEvent{},
		blocked: map[string]bool{},
		removed: map[int64]bool{},
	}
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.HallEvent) (*domain.HallEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.byID[e.ID] = e
	f.blocked[domain.DateKey(e.EventDate)] = true
	return e, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.HallEvent, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, eventRepo.ErrEventNotFound
}

func (f *fakeEventRepo) GetWithFilter(_ context.Context, _ domain.EventsFilter) ([]*domain.HallEvent, error) {
	result := make([]*domain.HallEvent, 0, len(f.byID))
	for _, e := range f.byID {
		result = append(result, e)
	}
	return result, nil
}

func (f *fakeEventRepo) HasActiveBlock(_ context.Context, date string) (bool, error) {
	return f.blocked[date], nil
}

func (f *fakeEventRepo) Remove(_ context.Context, id int64) error {
	e, ok := f.byID[id]
	if !ok {
		return eventRepo.ErrEventNotFound
	}
	e.Status = domain.EventStatusRemoved
	f.removed[id] = true
	f.blocked[domain.DateKey(e.EventDate)] = false
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestBlock(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Block(context.Background(), &models.BlockDateRequest{
		Date:   "2025-11-20",
		Reason: ptr.Ptr("техническое обслуживание"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-11-20", resp.EventDate)
	assert.Equal(t, "blocked", resp.Status)
	require.NotNil(t, resp.Reason)
}

func TestBlock_DuplicateRejected(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.Block(context.Background(), &models.BlockDateRequest{Date: "2025-11-20"})
	require.NoError(t, err)

	_, err = svc.Block(context.Background(), &models.BlockDateRequest{Date: "2025-11-20"})
	assert.True(t, errors.Is(err, ErrAlreadyBlocked))
}

func TestBlock_ConcurrentBlockMapsUniqueViolation(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewService(repo, nopLogger{})

	// Конкурентный Block успел между проверкой HasActiveBlock и вставкой:
	// частичный уникальный индекс отдаёт unique violation, обёрнутый
	// репозиторием через %w
	repo.createErr = fmt.Errorf("%w: Create - execute insert: %w",
		eventRepo.ErrExecQuery, &pq.Error{Code: "23505"})

	_, err := svc.Block(context.Background(), &models.BlockDateRequest{Date: "2025-11-20"})
	assert.True(t, errors.Is(err, ErrAlreadyBlocked))
}

func TestBlock_InvalidDate(t *testing.T) {
	svc := NewService(newFakeEventRepo(), nopLogger{})

	_, err := svc.Block(context.Background(), &models.BlockDateRequest{Date: "20.11.2025"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestUnblock(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Block(context.Background(), &models.BlockDateRequest{Date: "2025-11-20"})
	require.NoError(t, err)

	require.NoError(t, svc.Unblock(context.Background(), resp.ID))
	assert.True(t, repo.removed[resp.ID])

	// Повторное снятие уже удалённой блокировки
	err = svc.Unblock(context.Background(), resp.ID)
	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestUnblock_NotFound(t *testing.T) {
	svc := NewService(newFakeEventRepo(), nopLogger{})

	err := svc.Unblock(context.Background(), 42)
	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestList(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.Block(context.Background(), &models.BlockDateRequest{Date: "2025-11-20"})
	require.NoError(t, err)

	resp, err := svc.List(context.Background(), &models.ListEventsRequest{OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Events, 1)
}
