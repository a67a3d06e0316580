package domain

import "time"

// DayCell одна ячейка месячной сетки календаря
type DayCell struct {
	Date           time.Time
	InMonth        bool // принадлежит ли ячейка запрошенному месяцу
	Classification DayClassification
}

// MonthGrid строит месячную сетку календаря для отображения
//
// Сетка выровнена по неделям: начинается с воскресенья недели, содержащей
// первое число месяца, и заканчивается субботой недели, содержащей последнее.
// Длина результата всегда кратна 7. Дни соседних месяцев (overflow)
// классифицируются тем же классификатором, что и дни запрошенного месяца, —
// никакого особого случая для них нет, UI лишь визуально приглушает их
func MonthGrid(year int, month time.Month, bookings []*Booking, events []*HallEvent) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	// Неделя начинается с воскресенья (индекс 0)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, 6-int(last.Weekday()))

	// Группируем входные данные по дате, чтобы не сканировать весь период
	// для каждой ячейки
	bookingsByDay := make(map[string][]*Booking)
	for _, b := range bookings {
		key := DateKey(b.BookingDate)
		bookingsByDay[key] = append(bookingsByDay[key], b)
	}

	eventsByDay := make(map[string][]*HallEvent)
	for _, e := range events {
		key := DateKey(e.EventDate)
		eventsByDay[key] = append(eventsByDay[key], e)
	}

	cells := make([]DayCell, 0, 42)
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		key := DateKey(d)
		cells = append(cells, DayCell{
			Date:           d,
			InMonth:        d.Month() == month && d.Year() == year,
			Classification: ClassifyDay(d, bookingsByDay[key], eventsByDay[key]),
		})
	}

	return cells
}

// GridRange возвращает первую и последнюю даты месячной сетки
// Используется для выборки бронирований и событий одним запросом
func GridRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.AddDate(0, 0, -int(first.Weekday())), last.AddDate(0, 0, 6-int(last.Weekday()))
}
