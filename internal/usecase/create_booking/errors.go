package create_booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation возвращается, когда форма не прошла валидацию
	// Конкретные ошибки полей доступны через errors.As к ValidationErrors
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с существующим
	// бронированием или достигнута ёмкость дня
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrDateBlocked возвращается, когда дата закрыта администратором
	ErrDateBlocked = errors.New("create_booking: date is blocked")

	// ErrPackageNotFound возвращается, когда указанный пакет отсутствует в каталоге
	ErrPackageNotFound = errors.New("create_booking: package not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Коды ошибок валидации формы
// Порядок объявления соответствует порядку проверки полей
const (
	CodeMissingField            = "missing_field"
	CodeInvalidDateFormat       = "invalid_date_format"
	CodePastDate                = "past_date"
	CodeUnknownSlot             = "unknown_slot"
	CodeInvalidTimeFormat       = "invalid_time_format"
	CodeStartNotBeforeEnd       = "start_not_before_end"
	CodeInvalidGuestCount       = "invalid_guest_count"
	CodeInvalidPackageReference = "invalid_package_reference"
	CodeFieldTooLong            = "field_too_long"
)

// FieldError ошибка валидации одного поля формы
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors список ошибок валидации формы
// Собирается жадно: клиентская форма показывает все ошибки сразу.
// Порядок элементов детерминирован порядком проверок, поэтому первый
// элемент — самая приоритетная ошибка, если нужно показать одну
type ValidationErrors []FieldError

// Error реализует интерфейс error
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "create_booking: validation failed"
	}
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "create_booking: validation failed: " + strings.Join(parts, "; ")
}

// Is позволяет проверять ValidationErrors через errors.Is(err, ErrValidation)
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// HasCode проверяет наличие ошибки с указанным кодом
func (v ValidationErrors) HasCode(code string) bool {
	for _, fe := range v {
		if fe.Code == code {
			return true
		}
	}
	return false
}
