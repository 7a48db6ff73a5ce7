package quote_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	facilityRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/facility"
	"github.com/m04kA/BBQ-ReservationService/internal/pricing"
)

// UseCase use case для предварительного расчета стоимости бронирования
type UseCase struct {
	facilityRepo FacilityRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(facilityRepo FacilityRepository, logger Logger) *UseCase {
	return &UseCase{
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// Execute считает стоимость бронирования без его создания.
// Пустой набор слотов допустим и даёт нулевую стоимость - запрет
// пустых бронирований применяется только при создании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteReservation: facility=%d, date=%s, slots=%d",
		req.FacilityID, req.Date.Format(domain.DateFormat), len(req.TimeSlots))

	if req.FacilityID <= 0 {
		return nil, fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if len(req.TimeSlots) > domain.MaxTimeSlotsPerReservation {
		return nil, fmt.Errorf("%w: at most %d time slots per reservation", ErrInvalidInput, domain.MaxTimeSlotsPerReservation)
	}
	seen := make(map[int64]bool, len(req.TimeSlots))
	for _, slotID := range req.TimeSlots {
		if slotID <= 0 {
			return nil, fmt.Errorf("%w: time slot IDs must be positive", ErrInvalidInput)
		}
		if seen[slotID] {
			return nil, fmt.Errorf("%w: duplicate time slot id=%d", ErrInvalidInput, slotID)
		}
		seen[slotID] = true
	}

	facility, err := uc.facilityRepo.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("QuoteReservation: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("QuoteReservation: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	isWeekend := pricing.IsWeekend(req.Date)
	unitPrice := facility.WeekdayPrice
	if isWeekend {
		unitPrice = facility.WeekendPrice
	}

	return &Response{
		FacilityID:  req.FacilityID,
		Date:        req.Date,
		SlotCount:   len(req.TimeSlots),
		UnitPrice:   unitPrice,
		IsWeekend:   isWeekend,
		TotalAmount: pricing.Quote(facility, req.Date, len(req.TimeSlots)),
	}, nil
}
