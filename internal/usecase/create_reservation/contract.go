package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetActiveBySiteAndDate(ctx context.Context, siteID int64, date time.Time) ([]*domain.Reservation, error)
}

// FacilityRepository интерфейс репозитория объектов и мест
type FacilityRepository interface {
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
	GetSite(ctx context.Context, id int64) (*domain.Site, error)
}

// PolicyRepository интерфейс репозитория политики бронирования
type PolicyRepository interface {
	GetStorePolicy(ctx context.Context) (domain.StorePolicy, error)
}

// TimeSlotRepository интерфейс репозитория каталога слотов.
// Каталог читается напрямую из БД внутри транзакции, минуя кэш:
// проверка доступности должна видеть актуальное состояние
type TimeSlotRepository interface {
	GetAll(ctx context.Context) ([]domain.TimeSlot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
