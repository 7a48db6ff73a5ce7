package get_facility_reservations

import (
	"context"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	"github.com/m04kA/BBQ-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetFacilityReservations(ctx context.Context, req *models.GetFacilityReservationsRequest, actor domain.Actor) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
