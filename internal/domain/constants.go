package domain

// Default policy values
const (
	DefaultMaxAdvanceBookingDays     = 30
	DefaultMinAdvanceBookingHours    = 2
	DefaultCancellationDeadlineHours = 24
	// Фиксированный по продукту порог платной отмены; настраивается
	// отдельно от дедлайна отмены (это две разные политики)
	DefaultPenaltyThresholdHours = 24
)

// Business validation constants
const (
	MaxSpecialRequestsLength    = 500
	MaxAdminMemoLength          = 500
	MaxCancellationReasonLength = 500
	MaxTimeSlotsPerReservation  = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых бронирование занимает слоты
// Используется при проверке доступности
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
