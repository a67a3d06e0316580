package domain

import (
	"errors"
	"fmt"

	"github.com/avoevodin/hall-booking-service/pkg/types"
)

// ErrUnknownSlot возвращается, когда ключ слота отсутствует в словаре
// Вызывающий код обязан трактовать это как жёсткую ошибку валидации,
// а не подставлять слот по умолчанию
var ErrUnknownSlot = errors.New("domain: unknown slot key")

// SlotKey именованный временной слот зала
type SlotKey string

const (
	SlotMorning        SlotKey = "morning"
	SlotEvening        SlotKey = "evening"
	SlotNight          SlotKey = "night"
	SlotFullDay        SlotKey = "full_day"
	SlotHalfDayMorning SlotKey = "half_day_morning"
	SlotHalfDayEvening SlotKey = "half_day_evening"
	SlotShortDuration  SlotKey = "short_duration"

	// SlotNoon устаревший ключ, сохранён для старых записей и старых клиентов
	SlotNoon SlotKey = "noon"
)

// SlotRange канонический временной диапазон слота
type SlotRange struct {
	Start types.TimeString
	End   types.TimeString
}

// slotRanges единственный источник истины для соответствия слот → время
// Таблица используется и клиентской формой, и админкой, и серверной проверкой
// конфликтов — никогда не дублировать её в вызывающем коде
var slotRanges = map[SlotKey]SlotRange{
	SlotMorning:        {Start: "10:00", End: "14:00"},
	SlotEvening:        {Start: "14:00", End: "18:00"},
	SlotNight:          {Start: "18:00", End: "22:00"},
	SlotFullDay:        {Start: "10:00", End: "18:00"},
	SlotHalfDayMorning: {Start: "10:00", End: "14:00"},
	SlotHalfDayEvening: {Start: "14:00", End: "18:00"},
	SlotShortDuration:  {Start: "10:00", End: "18:00"},
	SlotNoon:           {Start: "12:00", End: "17:00"},
}

// catalogOrder порядок слотов для клиентской формы (без устаревшего noon)
var catalogOrder = []SlotKey{
	SlotMorning,
	SlotEvening,
	SlotNight,
	SlotFullDay,
	SlotHalfDayMorning,
	SlotHalfDayEvening,
	SlotShortDuration,
}

// ResolveSlot возвращает канонический диапазон времени для ключа слота
// Функция тотальна над словарём и чистая: одинаковый ключ всегда даёт
// одинаковый результат, где бы он ни вызывался
func ResolveSlot(key SlotKey) (SlotRange, error) {
	r, ok := slotRanges[key]
	if !ok {
		return SlotRange{}, fmt.Errorf("%w: %q", ErrUnknownSlot, string(key))
	}
	return r, nil
}

// AllowsCustomTimes возвращает true, если слот допускает явные времена
// начала/окончания от вызывающего кода вместо канонических
// Единственный такой слот — short_duration
func (k SlotKey) AllowsCustomTimes() bool {
	return k == SlotShortDuration
}

// CatalogSlots возвращает слоты для отображения в форме бронирования
// в фиксированном порядке; устаревший noon не предлагается
func CatalogSlots() []SlotKey {
	out := make([]SlotKey, len(catalogOrder))
	copy(out, catalogOrder)
	return out
}
