package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotConfirm возвращается, когда бронирование не может быть подтверждено
	ErrCannotConfirm = errors.New("booking cannot be confirmed")

	// ErrCannotUpdate возвращается, когда бронирование не может быть изменено
	ErrCannotUpdate = errors.New("booking cannot be updated")

	// ErrSlotNotAvailable возвращается, когда новое расписание конфликтует
	// с другим бронированием или ёмкостью дня
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrDateBlocked возвращается, когда новая дата закрыта администратором
	ErrDateBlocked = errors.New("date is blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
