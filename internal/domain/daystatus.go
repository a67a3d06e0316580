package domain

import "time"

// PublicDayStatus статус дня в клиентском календаре (три состояния)
type PublicDayStatus string

const (
	PublicAvailable PublicDayStatus = "available"
	PublicPartial   PublicDayStatus = "partial"
	PublicFull      PublicDayStatus = "full"
)

// AdminDayStatus статус дня в админском календаре (четыре состояния)
type AdminDayStatus string

const (
	AdminAvailable AdminDayStatus = "available"
	AdminPartial   AdminDayStatus = "partial"
	AdminBooked    AdminDayStatus = "booked"
	AdminBlocked   AdminDayStatus = "blocked"
)

// SlotFlags признаки занятости именованных слотов в течение дня
// Используются админским календарём для подсветки занятых окон
type SlotFlags struct {
	Morning       bool
	Evening       bool
	Night         bool
	ShortDuration bool
	FullDay       bool
}

// Any возвращает true, если хотя бы один слот занят
func (f SlotFlags) Any() bool {
	return f.Morning || f.Evening || f.Night || f.ShortDuration || f.FullDay
}

// DayClassification результат классификации одного календарного дня
// Вычисляется по требованию из текущего набора бронирований и событий,
// никогда не хранится. Клиентский и админский статусы — проекции одного
// и того же результата, поэтому расходиться они не могут
type DayClassification struct {
	Date         time.Time
	Blocked      bool
	HasConfirmed bool
	HasPending   bool
	ActiveCount  int
	FullDay      bool // есть бронирование, покрывающее весь день
	Flags        SlotFlags
}

// ClassifyDay классифицирует один день по набору бронирований и событий,
// относящихся к этой дате. Бронирования и события с другими датами игнорируются,
// поэтому функцию безопасно вызывать с выборкой за целый период
func ClassifyDay(date time.Time, bookings []*Booking, events []*HallEvent) DayClassification {
	c := DayClassification{Date: date}

	c.Blocked = DayIsBlocked(date, events)

	for _, b := range bookings {
		if !SameDay(b.BookingDate, date) || !b.IsActive() {
			continue
		}

		c.ActiveCount++

		switch b.Status {
		case StatusConfirmed:
			c.HasConfirmed = true
		case StatusPending:
			c.HasPending = true
		}

		if b.IsFullDayEquivalent() {
			c.FullDay = true
		}

		markSlotFlags(&c.Flags, b)
	}

	return c
}

// markSlotFlags отмечает именованные слоты, которые пересекает бронирование
func markSlotFlags(flags *SlotFlags, b *Booking) {
	if b.IsFullDayEquivalent() {
		flags.FullDay = true
	}
	if b.SlotKey != nil && *b.SlotKey == SlotShortDuration {
		flags.ShortDuration = true
	}

	for key, target := range map[SlotKey]*bool{
		SlotMorning: &flags.Morning,
		SlotEvening: &flags.Evening,
		SlotNight:   &flags.Night,
	} {
		r, err := ResolveSlot(key)
		if err != nil {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, r.Start, r.End) {
			*target = true
		}
	}
}

// PublicStatus проекция классификации для клиентского календаря
// Порядок проверок фиксирован: blocked/full_day/полная занятость → full,
// одно активное бронирование → partial, иначе available
func (c DayClassification) PublicStatus() PublicDayStatus {
	if c.Blocked || c.FullDay || c.ActiveCount >= DailyCapacity {
		return PublicFull
	}
	if c.ActiveCount > 0 {
		return PublicPartial
	}
	return PublicAvailable
}

// AdminStatus проекция классификации для админского календаря
// Порядок строго: blocked → booked (есть confirmed) → partial (есть pending
// или занят именованный слот без full_day) → available. Первое совпадение
// побеждает: confirmed перекрывает pending, блокировка перекрывает всё
func (c DayClassification) AdminStatus() AdminDayStatus {
	switch {
	case c.Blocked:
		return AdminBlocked
	case c.HasConfirmed:
		return AdminBooked
	case c.HasPending || (c.Flags.Any() && !c.Flags.FullDay):
		return AdminPartial
	default:
		return AdminAvailable
	}
}
