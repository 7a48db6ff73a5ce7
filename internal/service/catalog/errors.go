package catalog

import "errors"

var (
	// ErrInvalidCatalog возвращается при попытке сохранить некорректный каталог
	ErrInvalidCatalog = errors.New("invalid slot catalog")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
