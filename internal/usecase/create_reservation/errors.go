package create_reservation

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден или неактивен
	ErrFacilityNotFound = errors.New("create_reservation: facility not found")

	// ErrSiteNotFound возвращается, когда место не найдено, неактивно
	// или не принадлежит указанному объекту
	ErrSiteNotFound = errors.New("create_reservation: site not found")

	// ErrUnknownTimeSlot возвращается, когда запрошен слот вне каталога
	ErrUnknownTimeSlot = errors.New("create_reservation: unknown time slot")

	// ErrSlotConflict возвращается, когда хотя бы один из запрошенных
	// слотов уже занят активным бронированием
	ErrSlotConflict = errors.New("create_reservation: time slot already reserved")

	// ErrOutsideBookingWindow возвращается при нарушении окна бронирования
	// (слишком рано или слишком поздно)
	ErrOutsideBookingWindow = errors.New("create_reservation: outside booking window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
