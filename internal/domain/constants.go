package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DailyCapacity максимальное количество одновременных активных бронирований на день
// Зал имеет две независимо планируемые зоны, поэтому на одной дате могут
// сосуществовать до двух непересекающихся бронирований
const DailyCapacity = 2

// Business validation constants
const (
	MinFullNameLength           = 2
	MinMobileDigits             = 10
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// InactiveStatuses список статусов, не влияющих на доступность
// Используется для фильтрации при проверке конфликтов и подсчёте занятости
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

// ActiveStatuses список статусов, занимающих слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
