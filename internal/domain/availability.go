package domain

import (
	"time"

	"github.com/avoevodin/hall-booking-service/pkg/types"
)

// Overlaps проверяет пересечение двух полуоткрытых интервалов [s1,e1) и [s2,e2)
// Бронирование, заканчивающееся в 14:00, НЕ конфликтует с начинающимся в 14:00:
// общая граница пересечением не считается
func Overlaps(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}

// ConflictResult результат проверки кандидата на конфликт с существующими бронированиями
type ConflictResult struct {
	Available    bool // можно ли принять кандидата
	Conflicting  bool // пересекается ли кандидат хотя бы с одним активным бронированием
	BookingCount int  // количество активных бронирований на дате
}

// CheckConflict решает, может ли кандидат (date, start, end) быть принят
// с учётом существующих бронирований и блокировок на эту дату.
//
// Правила:
//   - заблокированная дата недоступна всегда, независимо от количества бронирований;
//   - учитываются только активные (pending/confirmed) бронирования с совпадающей датой;
//   - пересечение считается по полуоткрытым интервалам (см. Overlaps);
//   - зал принимает не более DailyCapacity непересекающихся бронирований на день.
//
// Функция чистая и работает по снепшоту: защита от гонки между конкурентными
// запросами — ответственность хранилища (сериализуемая транзакция при вставке).
// Этот результат — предварительная проверка, а не резервация.
func CheckConflict(date time.Time, start, end types.TimeString, bookings []*Booking, events []*HallEvent) ConflictResult {
	result := ConflictResult{}

	for _, b := range bookings {
		if !b.IsActive() || !SameDay(b.BookingDate, date) {
			continue
		}
		result.BookingCount++
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			result.Conflicting = true
		}
	}

	// Блокировка перекрывает всё остальное
	if DayIsBlocked(date, events) {
		result.Available = false
		return result
	}

	result.Available = result.BookingCount == 0 ||
		(!result.Conflicting && result.BookingCount < DailyCapacity)

	return result
}
