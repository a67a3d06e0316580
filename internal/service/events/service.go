package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	eventRepo "github.com/avoevodin/hall-booking-service/internal/infra/storage/event"
	"github.com/avoevodin/hall-booking-service/internal/service/events/models"
)

// uniqueViolationCode pq код нарушения уникального ограничения
const uniqueViolationCode = "23505"

// isUniqueViolation проверяет, что ошибка вызвана нарушением уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}

// Service сервис для работы с событиями календаря (блокировками дат)
type Service struct {
	eventRepo EventRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(eventRepo EventRepository, logger Logger) *Service {
	return &Service{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Block закрывает дату для новых бронирований
// Существующие бронирования не трогаются: блокировка запрещает только
// создание новых
func (s *Service) Block(ctx context.Context, req *models.BlockDateRequest) (*models.EventResponse, error) {
	s.logger.Info("Block: blocking date=%s", req.Date)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("Block: invalid date=%s", req.Date)
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	// Повторная блокировка той же даты — ошибка, а не дубликат
	blocked, err := s.eventRepo.HasActiveBlock(ctx, req.Date)
	if err != nil {
		s.logger.Error("Block: failed to check existing block for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}
	if blocked {
		s.logger.Warn("Block: date=%s is already blocked", req.Date)
		return nil, ErrAlreadyBlocked
	}

	event := &domain.HallEvent{
		EventDate: date,
		EventType: domain.EventTypeBlocked,
		Status:    domain.EventStatusBlocked,
		Reason:    req.Reason,
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		// Частичный уникальный индекс по активным блокировкам закрывает гонку
		// с конкурентным Block: проигравший получает unique violation
		if isUniqueViolation(err) {
			s.logger.Warn("Block: date=%s was blocked concurrently", req.Date)
			return nil, ErrAlreadyBlocked
		}
		s.logger.Error("Block: failed to create event for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Block: successfully blocked date=%s, event id=%d", req.Date, created.ID)
	return models.FromDomainEvent(created), nil
}

// Unblock снимает блокировку (мягкое удаление события)
func (s *Service) Unblock(ctx context.Context, id int64) error {
	s.logger.Info("Unblock: removing event id=%d", id)

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("Unblock: event id=%d not found", id)
			return ErrEventNotFound
		}
		s.logger.Error("Unblock: repository error for event id=%d: %v", id, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	if event.Status == domain.EventStatusRemoved {
		s.logger.Warn("Unblock: event id=%d is already removed", id)
		return ErrEventNotFound
	}

	if err := s.eventRepo.Remove(ctx, id); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("Unblock: repository error for event id=%d: %v", id, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unblock: successfully removed event id=%d", id)
	return nil
}

// List получает события календаря с фильтрацией по периоду
func (s *Service) List(ctx context.Context, req *models.ListEventsRequest) (*models.EventListResponse, error) {
	s.logger.Info("List: fetching events, onlyActive=%t", req.OnlyActive)

	filter := domain.EventsFilter{
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		OnlyActive: req.OnlyActive,
	}

	events, err := s.eventRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d events", len(events))
	return models.FromDomainEventList(events), nil
}
