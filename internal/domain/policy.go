package domain

// StorePolicy deployment-wide booking policy settings, read from the
// store_settings key/value table. Input to the policy engine, not part of
// the reservation core's owned state.
type StorePolicy struct {
	MaxAdvanceBookingDays     int // максимум дней вперёд для бронирования
	MinAdvanceBookingHours    int // минимум часов до начала бронирования
	CancellationDeadlineHours int // дедлайн отмены (часов до начала)
	PenaltyThresholdHours     int // порог, после которого отмена платная
}

// DefaultStorePolicy возвращает политику по умолчанию
// Применяется, когда настройки в store_settings отсутствуют
func DefaultStorePolicy() StorePolicy {
	return StorePolicy{
		MaxAdvanceBookingDays:     DefaultMaxAdvanceBookingDays,
		MinAdvanceBookingHours:    DefaultMinAdvanceBookingHours,
		CancellationDeadlineHours: DefaultCancellationDeadlineHours,
		PenaltyThresholdHours:     DefaultPenaltyThresholdHours,
	}
}
