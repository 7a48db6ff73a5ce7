package quote_reservation

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден или неактивен
	ErrFacilityNotFound = errors.New("quote_reservation: facility not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_reservation: internal error")
)
