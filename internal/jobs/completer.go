package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avoevodin/hall-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CompletePastConfirmed(ctx context.Context, before string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Completer фоновая задача, переводящая прошедшие подтверждённые бронирования
// в статус completed. Pending бронирования не трогаются: просроченную заявку
// админ должен отменить или подтвердить вручную
type Completer struct {
	bookingRepo BookingRepository
	schedule    string
	logger      Logger
	cron        *cron.Cron
}

// NewCompleter создает новую задачу завершения бронирований
// schedule в стандартном cron формате, например "0 3 * * *"
func NewCompleter(bookingRepo BookingRepository, schedule string, logger Logger) *Completer {
	return &Completer{
		bookingRepo: bookingRepo,
		schedule:    schedule,
		logger:      logger,
		cron:        cron.New(),
	}
}

// Start регистрирует задачу и запускает планировщик
func (c *Completer) Start() error {
	if _, err := c.cron.AddFunc(c.schedule, c.run); err != nil {
		return err
	}
	c.cron.Start()
	c.logger.Info("Completer: started with schedule %q", c.schedule)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего запуска
func (c *Completer) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
	c.logger.Info("Completer: stopped")
}

// Run выполняет один проход вручную, вне расписания
func (c *Completer) Run(ctx context.Context) (int64, error) {
	today := time.Now().Format(domain.DateFormat)
	return c.bookingRepo.CompletePastConfirmed(ctx, today)
}

func (c *Completer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	completed, err := c.Run(ctx)
	if err != nil {
		c.logger.Error("Completer: failed to complete past bookings: %v", err)
		return
	}

	if completed > 0 {
		c.logger.Info("Completer: completed %d past bookings", completed)
	}
}
