package update_slot_catalog

import (
	"context"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

type CatalogService interface {
	GetAll(ctx context.Context) ([]domain.TimeSlot, error)
	Update(ctx context.Context, slots []domain.TimeSlot) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
