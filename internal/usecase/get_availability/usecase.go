package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	facilityRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/facility"
)

// UseCase use case для получения доступности объекта на дату
type UseCase struct {
	reservationRepo ReservationRepository
	facilityRepo    FacilityRepository
	slotCatalog     SlotCatalog
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	facilityRepo FacilityRepository,
	slotCatalog SlotCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		facilityRepo:    facilityRepo,
		slotCatalog:     slotCatalog,
		logger:          logger,
	}
}

// Execute строит матрицу доступности место x слот на запрошенную дату.
// Слот занят, если его держит хотя бы одно активное (pending или
// confirmed) бронирование этого места; отменённые бронирования слоты
// не занимают. Ответ консультативный, финальная проверка выполняется
// при создании бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: facility=%d, date=%s",
		req.FacilityID, req.Date.Format(domain.DateFormat))

	if req.FacilityID <= 0 {
		return nil, fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := uc.facilityRepo.GetFacility(ctx, req.FacilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailability: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailability: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	sites, err := uc.facilityRepo.GetSitesByFacility(ctx, req.FacilityID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get sites for facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get sites: %v", ErrInternal, err)
	}

	catalog, err := uc.slotCatalog.GetAll(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get slot catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot catalog: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.GetActiveByFacilityAndDate(ctx, req.FacilityID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations for facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// Собираем занятые пары (место, слот)
	occupied := make(map[int64]map[int64]bool, len(sites))
	for _, reservation := range reservations {
		slots := occupied[reservation.SiteID]
		if slots == nil {
			slots = make(map[int64]bool)
			occupied[reservation.SiteID] = slots
		}
		for _, slotID := range reservation.TimeSlots {
			slots[slotID] = true
		}
	}

	resp := &Response{
		FacilityID: req.FacilityID,
		Date:       req.Date,
		Sites:      make([]SiteAvailability, 0, len(sites)),
	}

	for _, site := range sites {
		siteResp := SiteAvailability{
			SiteID:     site.ID,
			SiteNumber: site.SiteNumber,
			SiteName:   site.Name,
			Slots:      make([]SlotAvailability, 0, len(catalog)),
		}

		for _, slot := range catalog {
			siteResp.Slots = append(siteResp.Slots, SlotAvailability{
				SlotID:    slot.ID,
				Name:      slot.Name,
				Time:      slot.Time,
				Available: !occupied[site.ID][slot.ID],
			})
		}

		resp.Sites = append(resp.Sites, siteResp)
	}

	uc.logger.Info("GetAvailability: facility=%d, date=%s, %d sites, %d active reservations",
		req.FacilityID, req.Date.Format(domain.DateFormat), len(sites), len(reservations))

	return resp, nil
}
