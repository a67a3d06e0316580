package get_calendar

import "errors"

var (
	// ErrInvalidPeriod возвращается при некорректном годе или месяце
	ErrInvalidPeriod = errors.New("get_calendar: invalid period")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar: internal error")
)
