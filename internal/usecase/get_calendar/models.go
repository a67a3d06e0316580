package get_calendar

import (
	"time"

	"github.com/avoevodin/hall-booking-service/internal/domain"
)

// Request модель запроса месячного календаря
type Request struct {
	Year  int
	Month int
	Admin bool // Админская проекция: четыре статуса и признаки слотов
}

// Day одна ячейка месячной сетки
// Status содержит клиентскую либо админскую проекцию в зависимости от запроса
type Day struct {
	Date    time.Time
	InMonth bool
	Status  string

	// Детали только для админской проекции
	ActiveCount int
	Blocked     bool
	Flags       *domain.SlotFlags
}

// Response модель ответа с месячной сеткой
// Сетка выровнена по неделям (воскресенье — первый день), длина кратна 7
type Response struct {
	Year  int
	Month int
	Days  []Day
}
