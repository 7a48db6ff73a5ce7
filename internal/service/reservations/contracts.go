package reservations

import (
	"context"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityReservationsFilter) ([]*domain.Reservation, error)
	ApplyTransition(ctx context.Context, id int64, result domain.TransitionResult, adminMemo *string, cancellationReason *string) error
}

// PolicyRepository интерфейс репозитория политики бронирования
type PolicyRepository interface {
	GetStorePolicy(ctx context.Context) (domain.StorePolicy, error)
}

// SlotCatalog интерфейс каталога временных слотов
type SlotCatalog interface {
	GetAll(ctx context.Context) ([]domain.TimeSlot, error)
	Labels(ctx context.Context, slotIDs []int64) []string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
