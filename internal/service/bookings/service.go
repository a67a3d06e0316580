package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	bookingRepo "github.com/avoevodin/hall-booking-service/internal/infra/storage/booking"
	"github.com/avoevodin/hall-booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
// Обслуживает админские операции: просмотр, подтверждение, отмена
// и изменение реквизитов. Создание бронирований живёт в usecase create_booking
type Service struct {
	bookingRepo BookingRepository
	eventRepo   EventRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по публичному коду
// Используется клиентом для проверки статуса своей заявки
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking ref=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking ref=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
//
// Примеры использования:
// - Все активные: List(ctx, &ListBookingsRequest{})
// - На дату: StartDate и EndDate указывают на одну дату
// - Только подтверждённые: Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, status=%v, includeInactive=%t", req.Status, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает ожидающее бронирование
// Повторная проверка конфликтов не нужна: pending уже занимает интервал,
// конкурентное создание пересекающегося бронирования отсечено при вставке
func (s *Service) Confirm(ctx context.Context, id int64) error {
	s.logger.Info("Confirm: confirming booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", id, booking.Status)
		return ErrCannotConfirm
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%d", id)
	return nil
}

// Cancel отменяет бронирование с указанием причины
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	if len([]rune(req.CancellationReason)) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", id)
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return nil
}

// UpdateDetails изменяет реквизиты бронирования
// Если обновление затрагивает дату или время, конфликты проверяются заново
// в сериализуемой транзакции, исключая само бронирование из подсчёта
func (s *Service) UpdateDetails(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateDetails: updating booking id=%d", id)

	upd, err := req.ToDomainUpdate()
	if err != nil {
		s.logger.Warn("UpdateDetails: invalid input for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Booking

	txErr := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateDetails - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeUpdated() {
			s.logger.Warn("UpdateDetails: booking id=%d cannot be updated, status=%s", id, booking.Status)
			return ErrCannotUpdate
		}

		if upd.ChangesSchedule() {
			if err := s.checkSchedule(txCtx, booking, &upd); err != nil {
				return err
			}
		}

		updated, err := s.bookingRepo.UpdateDetails(txCtx, id, upd)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateDetails - repository error: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if txErr != nil {
		if !errors.Is(txErr, ErrBookingNotFound) && !errors.Is(txErr, ErrCannotUpdate) &&
			!errors.Is(txErr, ErrSlotNotAvailable) && !errors.Is(txErr, ErrDateBlocked) {
			s.logger.Error("UpdateDetails: transaction failed for booking id=%d: %v", id, txErr)
		}
		return nil, txErr
	}

	s.logger.Info("UpdateDetails: successfully updated booking id=%d", id)
	return models.FromDomainBooking(result), nil
}

// checkSchedule проверяет конфликты для нового расписания бронирования
// Вызывается внутри сериализуемой транзакции
func (s *Service) checkSchedule(ctx context.Context, booking *domain.Booking, upd *domain.BookingUpdate) error {
	// Эффективное расписание: обновлённые поля поверх текущих
	date := booking.BookingDate
	start := booking.StartTime
	end := booking.EndTime

	if upd.SlotKey != nil {
		// Именованный слот задаёт интервал целиком, явные времена его уточняют
		r, err := domain.ResolveSlot(*upd.SlotKey)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		start, end = r.Start, r.End
	}
	if upd.BookingDate != nil {
		date = *upd.BookingDate
	}
	if upd.StartTime != nil {
		start = *upd.StartTime
	}
	if upd.EndTime != nil {
		end = *upd.EndTime
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	// Записываем нормализованное расписание обратно в обновление,
	// чтобы слот и времена в БД не разошлись
	upd.BookingDate = &date
	upd.StartTime = &start
	upd.EndTime = &end

	eventsFilter := domain.EventsFilter{
		StartDate:  &date,
		EndDate:    &date,
		OnlyActive: true,
	}
	events, err := s.eventRepo.GetWithFilter(ctx, eventsFilter)
	if err != nil {
		return fmt.Errorf("%w: checkSchedule - failed to get events: %v", ErrInternal, err)
	}

	bookingsFilter := domain.BookingsFilter{
		StartDate: &date,
		EndDate:   &date,
	}
	existing, err := s.bookingRepo.GetWithFilter(ctx, bookingsFilter)
	if err != nil {
		return fmt.Errorf("%w: checkSchedule - failed to get bookings: %v", ErrInternal, err)
	}

	// Само бронирование не конкурирует со своим новым расписанием
	others := make([]*domain.Booking, 0, len(existing))
	for _, b := range existing {
		if b.ID != booking.ID {
			others = append(others, b)
		}
	}

	conflict := domain.CheckConflict(date, start, end, others, events)
	if !conflict.Available {
		if domain.DayIsBlocked(date, events) {
			s.logger.Warn("checkSchedule: date %s is blocked for booking id=%d", domain.DateKey(date), booking.ID)
			return ErrDateBlocked
		}
		s.logger.Warn("checkSchedule: slot not available for booking id=%d on %s", booking.ID, domain.DateKey(date))
		return ErrSlotNotAvailable
	}

	return nil
}
