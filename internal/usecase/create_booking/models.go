package create_booking

import (
	"time"

	"github.com/avoevodin/hall-booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
// Поля заполняются из клиентской или админской формы как есть,
// нормализация и валидация — ответственность usecase
type Request struct {
	FullName    string  // Имя клиента
	Mobile      string  // Контактный телефон
	BookingDate string  // Дата бронирования "2025-11-20"
	SlotKey     *string // Именованный слот (например, "morning")
	StartTime   *string // Явное время начала "10:00" (перекрывает слот)
	EndTime     *string // Явное время окончания "14:00"
	GuestCount  int     // Количество гостей
	PackageID   *int64  // Пакет из каталога (опционально)
	Notes       *string // Дополнительные заметки (опционально)
	AsAdmin     bool    // Админское создание: бронирование сразу confirmed
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	Reference   string           // Публичный код бронирования
	FullName    string           // Имя клиента
	Mobile      string           // Контактный телефон
	BookingDate time.Time        // Дата бронирования
	StartTime   types.TimeString // Время начала
	EndTime     types.TimeString // Время окончания
	SlotKey     *string          // Именованный слот, если был указан
	Status      string           // Статус бронирования
	GuestCount  int              // Количество гостей

	// Денормализованные данные пакета
	PackageID    *int64
	PackageName  *string
	PackagePrice *float64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
