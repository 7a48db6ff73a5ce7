package catalog

import (
	"context"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// TimeSlotRepository интерфейс репозитория каталога слотов
type TimeSlotRepository interface {
	GetAll(ctx context.Context) ([]domain.TimeSlot, error)
	ReplaceAll(ctx context.Context, slots []domain.TimeSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
