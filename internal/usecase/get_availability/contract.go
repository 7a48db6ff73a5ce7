package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetActiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.Reservation, error)
}

// FacilityRepository интерфейс репозитория объектов и мест
type FacilityRepository interface {
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
	GetSitesByFacility(ctx context.Context, facilityID int64) ([]*domain.Site, error)
}

// SlotCatalog интерфейс каталога временных слотов
type SlotCatalog interface {
	GetAll(ctx context.Context) ([]domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
