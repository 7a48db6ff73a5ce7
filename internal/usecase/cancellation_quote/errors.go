package cancellation_quote

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancellation_quote: reservation not found")

	// ErrAccessDenied возвращается, когда у инициатора нет прав доступа
	ErrAccessDenied = errors.New("cancellation_quote: access denied")

	// ErrNotCancellable возвращается, когда бронирование уже отменено
	ErrNotCancellable = errors.New("cancellation_quote: reservation is not cancellable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancellation_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancellation_quote: internal error")
)
