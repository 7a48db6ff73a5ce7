package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	facilityRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/BBQ-ReservationService/internal/policy"
	"github.com/m04kA/BBQ-ReservationService/internal/pricing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	facilityRepo    FacilityRepository
	policyRepo      PolicyRepository
	slotRepo        TimeSlotRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	facilityRepo FacilityRepository,
	policyRepo PolicyRepository,
	slotRepo TimeSlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		facilityRepo:    facilityRepo,
		policyRepo:      policyRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в сериализуемой транзакции
// с блокировкой активных бронирований места (FOR UPDATE); уникальный
// индекс по (site, date, slot) страхует от гонок на уровне БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: facility=%d, site=%d, date=%s, slots=%v",
		req.FacilityID, req.SiteID, req.Date.Format(domain.DateFormat), req.TimeSlots)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем объект
	facility, err := uc.facilityRepo.GetFacility(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CreateReservation: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateReservation: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 4. Получаем место и проверяем принадлежность объекту
	site, err := uc.facilityRepo.GetSite(ctx, req.SiteID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrSiteNotFound) {
			uc.logger.Warn("CreateReservation: site id=%d not found", req.SiteID)
			return nil, ErrSiteNotFound
		}
		uc.logger.Error("CreateReservation: failed to get site id=%d: %v", req.SiteID, err)
		return nil, fmt.Errorf("%w: failed to get site: %v", ErrInternal, err)
	}
	if site.FacilityID != req.FacilityID {
		uc.logger.Warn("CreateReservation: site id=%d does not belong to facility id=%d", req.SiteID, req.FacilityID)
		return nil, ErrSiteNotFound
	}

	var result *domain.Reservation

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем политику бронирования
		storePolicy, err := uc.policyRepo.GetStorePolicy(txCtx)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get store policy: %v", err)
			return fmt.Errorf("%w: failed to get store policy: %w", ErrInternal, err)
		}

		// 5.2. Читаем каталог слотов и сопоставляем запрошенные id
		catalog, err := uc.slotRepo.GetAll(txCtx)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get slot catalog: %v", err)
			return fmt.Errorf("%w: failed to get slot catalog: %w", ErrInternal, err)
		}

		slots, err := resolveSlots(catalog, req.TimeSlots)
		if err != nil {
			uc.logger.Warn("CreateReservation: slot resolution failed: %v", err)
			return err
		}

		// 5.3. Проверяем окно бронирования от начала самого раннего слота
		startAt, err := earliestStart(req.Date, slots)
		if err != nil {
			return err
		}

		decision := policy.CanBook(now, startAt, storePolicy)
		if !decision.Allowed {
			uc.logger.Warn("CreateReservation: booking window violated: %s", decision.Reason)
			return fmt.Errorf("%w: %s", ErrOutsideBookingWindow, decision.Reason)
		}

		// 5.4. Получаем активные бронирования места на дату с блокировкой
		// (FOR UPDATE) и проверяем пересечение наборов слотов
		existing, err := uc.reservationRepo.GetActiveBySiteAndDate(txCtx, req.SiteID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get active reservations: %v", err)
			return fmt.Errorf("%w: failed to get active reservations: %w", ErrInternal, err)
		}

		if conflict := findConflict(existing, req.TimeSlots); conflict != nil {
			uc.logger.Warn("CreateReservation: slot conflict with reservation id=%d on site=%d date=%s",
				conflict.ID, req.SiteID, req.Date.Format(domain.DateFormat))
			return ErrSlotConflict
		}

		// 5.5. Считаем стоимость и фиксируем её на бронировании
		totalAmount := pricing.Quote(facility, req.Date, len(req.TimeSlots))

		// 5.6. Снимок меток слотов на момент создания
		labels := make([]string, 0, len(slots))
		for _, slot := range slots {
			labels = append(labels, slot.Name)
		}

		reservation := &domain.Reservation{
			FacilityID:      req.FacilityID,
			SiteID:          req.SiteID,
			ReservationDate: req.Date,
			TimeSlots:       req.TimeSlots,
			SlotLabels:      labels,
			TotalAmount:     totalAmount,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentWaiting,
			Customer: domain.CustomerInfo{
				UserID:     req.UserID,
				GuestName:  req.GuestName,
				GuestPhone: req.GuestPhone,
				GuestEmail: req.GuestEmail,
			},
			SpecialRequests: req.SpecialRequests,
		}

		// 5.7. Сохраняем бронирование вместе со строками удержания слотов
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: unique constraint hit for site=%d date=%s",
					req.SiteID, req.Date.Format(domain.DateFormat))
				return ErrSlotConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, amount=%d",
		result.ID, result.TotalAmount)

	return &Response{
		ID:              result.ID,
		FacilityID:      result.FacilityID,
		SiteID:          result.SiteID,
		ReservationDate: result.ReservationDate,
		TimeSlots:       result.TimeSlots,
		SlotLabels:      result.SlotLabels,
		TotalAmount:     result.TotalAmount,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		UserID:          result.Customer.UserID,
		GuestName:       result.Customer.GuestName,
		GuestPhone:      result.Customer.GuestPhone,
		GuestEmail:      result.Customer.GuestEmail,
		SpecialRequests: result.SpecialRequests,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
