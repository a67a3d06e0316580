package check_availability

import "github.com/avoevodin/hall-booking-service/pkg/types"

// Request модель запроса проверки доступности
// Интервал задаётся либо именованным слотом, либо явными временами;
// явные времена побеждают слот (та же логика, что при создании)
type Request struct {
	Date      string  // Дата "2025-11-20"
	SlotKey   *string // Именованный слот (например, "evening")
	StartTime *string // Явное время начала "10:00"
	EndTime   *string // Явное время окончания "14:00"
}

// Response модель ответа проверки доступности
// Снепшот на момент запроса: окончательное решение всё равно принимается
// в транзакции создания бронирования
type Response struct {
	Available    bool             // Можно ли бронировать интервал
	Conflicting  bool             // Интервал пересекает существующее бронирование
	Blocked      bool             // Дата закрыта администратором
	BookingCount int              // Количество активных бронирований на дату
	StartTime    types.TimeString // Нормализованное время начала
	EndTime      types.TimeString // Нормализованное время окончания
}
