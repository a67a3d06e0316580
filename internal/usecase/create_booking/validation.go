package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/avoevodin/hall-booking-service/internal/domain"
	"github.com/avoevodin/hall-booking-service/pkg/types"
)

// buildBooking валидирует и нормализует форму в каноническое бронирование
//
// Проверки выполняются в фиксированном порядке, ошибки собираются жадно —
// форма показывает пользователю весь список сразу, а порядок гарантирует,
// что первая ошибка списка — самая приоритетная. Функция чистая:
// ни хранилище, ни каталог здесь не трогаются
func buildBooking(req *Request, now time.Time) (*domain.Booking, ValidationErrors) {
	var errs ValidationErrors

	// 1. Имя: минимум два символа после обрезки пробелов
	fullName := strings.TrimSpace(req.FullName)
	if len([]rune(fullName)) < domain.MinFullNameLength {
		errs = append(errs, FieldError{
			Field:   "full_name",
			Code:    CodeMissingField,
			Message: "full name is required (at least 2 characters)",
		})
	}

	// 2. Телефон: минимум 10 цифр
	mobile := strings.TrimSpace(req.Mobile)
	if countDigits(mobile) < domain.MinMobileDigits {
		errs = append(errs, FieldError{
			Field:   "mobile",
			Code:    CodeMissingField,
			Message: "mobile number is required (at least 10 digits)",
		})
	}

	// 3. Дата: формат YYYY-MM-DD, сегодня или позже (сравнение по дням)
	var bookingDate time.Time
	dateStr := strings.TrimSpace(req.BookingDate)
	switch {
	case dateStr == "":
		errs = append(errs, FieldError{
			Field:   "booking_date",
			Code:    CodeMissingField,
			Message: "booking date is required",
		})
	default:
		parsed, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			errs = append(errs, FieldError{
				Field:   "booking_date",
				Code:    CodeInvalidDateFormat,
				Message: "booking date must be in YYYY-MM-DD format",
			})
		} else if isDateInPast(parsed, now) {
			errs = append(errs, FieldError{
				Field:   "booking_date",
				Code:    CodePastDate,
				Message: "booking date cannot be in the past",
			})
		} else {
			bookingDate = parsed
		}
	}

	// 4-5. Время: явные времена или именованный слот; явные побеждают
	startTime, endTime, slotKey, timeErrs := resolveTimes(req)
	errs = append(errs, timeErrs...)

	// 6. Количество гостей: положительное целое
	if req.GuestCount <= 0 {
		errs = append(errs, FieldError{
			Field:   "guest_count",
			Code:    CodeInvalidGuestCount,
			Message: "guest count must be a positive integer",
		})
	}

	// 7. Пакет: синтаксическая проверка идентификатора
	// Существование пакета проверяется отдельно по каталогу
	if req.PackageID != nil && *req.PackageID <= 0 {
		errs = append(errs, FieldError{
			Field:   "package_id",
			Code:    CodeInvalidPackageReference,
			Message: "package reference must be a positive identifier",
		})
	}

	// 8. Заметки: ограничение длины свободного текста
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		errs = append(errs, FieldError{
			Field:   "notes",
			Code:    CodeFieldTooLong,
			Message: fmt.Sprintf("notes must not exceed %d characters", domain.MaxNotesLength),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	booking := &domain.Booking{
		FullName:    fullName,
		Mobile:      mobile,
		BookingDate: bookingDate,
		StartTime:   startTime,
		EndTime:     endTime,
		SlotKey:     slotKey,
		Status:      domain.StatusPending,
		GuestCount:  req.GuestCount,
		PackageID:   req.PackageID,
		Notes:       req.Notes,
	}

	return booking, nil
}

// resolveTimes определяет интервал бронирования из формы
// Если переданы оба явных времени, они побеждают слот; иначе интервал
// берётся из словаря слотов. Ключ слота сохраняется в бронировании, только
// если времена получены из него или слот допускает переопределение
func resolveTimes(req *Request) (types.TimeString, types.TimeString, *domain.SlotKey, ValidationErrors) {
	var errs ValidationErrors

	hasExplicit := req.StartTime != nil && req.EndTime != nil

	var slotKey *domain.SlotKey
	var slotRange domain.SlotRange

	if req.SlotKey != nil {
		key := domain.SlotKey(strings.TrimSpace(*req.SlotKey))
		resolved, err := domain.ResolveSlot(key)
		if err != nil {
			// Неизвестный слот — жёсткая ошибка, никаких слотов по умолчанию
			errs = append(errs, FieldError{
				Field:   "slot",
				Code:    CodeUnknownSlot,
				Message: "unknown slot key: " + string(key),
			})
			return "", "", nil, errs
		}
		slotKey = &key
		slotRange = resolved
	}

	if !hasExplicit {
		if slotKey == nil {
			errs = append(errs, FieldError{
				Field:   "start_time",
				Code:    CodeMissingField,
				Message: "either a slot or explicit start/end times are required",
			})
			return "", "", nil, errs
		}
		return slotRange.Start, slotRange.End, slotKey, nil
	}

	start, err := types.NewTimeStringFromString(strings.TrimSpace(*req.StartTime))
	if err != nil {
		errs = append(errs, FieldError{
			Field:   "start_time",
			Code:    CodeInvalidTimeFormat,
			Message: "start time must be in HH:MM format",
		})
	}

	end, err := types.NewTimeStringFromString(strings.TrimSpace(*req.EndTime))
	if err != nil {
		errs = append(errs, FieldError{
			Field:   "end_time",
			Code:    CodeInvalidTimeFormat,
			Message: "end time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return "", "", nil, errs
	}

	// Сравнение лексикографическое — безопасно для zero-padded HH:MM
	if !start.IsBefore(end) {
		errs = append(errs, FieldError{
			Field:   "start_time",
			Code:    CodeStartNotBeforeEnd,
			Message: "start time must be before end time",
		})
		return "", "", nil, errs
	}

	// Ключ слота сохраняется при явных временах только для short_duration
	if slotKey != nil && !slotKey.AllowsCustomTimes() {
		if start != slotRange.Start || end != slotRange.End {
			slotKey = nil
		}
	}

	return start, end, slotKey, nil
}

// countDigits возвращает количество цифр в строке
func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
// Сравнение календарных дней, а не моментов: распарсенная дата живёт в UTC,
// а now приходит в зоне сервера, поэтому сравнивать инстанты нельзя.
// Лексикографическое сравнение YYYY-MM-DD корректно, сегодняшняя дата проходит
func isDateInPast(date, now time.Time) bool {
	return date.Format(domain.DateFormat) < now.Format(domain.DateFormat)
}
