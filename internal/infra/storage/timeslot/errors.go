package timeslot

import "errors"

var (
	// ErrEmptyCatalog возвращается, когда в каталоге нет ни одного слота
	ErrEmptyCatalog = errors.New("timeslot.repository: slot catalog is empty")

	// ErrTransaction ошибка транзакции
	ErrTransaction = errors.New("timeslot.repository: transaction error")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("timeslot.repository: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("timeslot.repository: failed to scan row")
)
