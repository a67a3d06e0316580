package check_availability

import "errors"

var (
	// ErrInvalidDate возвращается при пустой дате или неверном формате
	ErrInvalidDate = errors.New("check_availability: invalid date")

	// ErrUnknownSlot возвращается при неизвестном ключе слота
	ErrUnknownSlot = errors.New("check_availability: unknown slot")

	// ErrInvalidTimes возвращается при некорректных явных временах
	ErrInvalidTimes = errors.New("check_availability: invalid times")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
