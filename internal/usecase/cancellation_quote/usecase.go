package cancellation_quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/BBQ-ReservationService/internal/policy"
)

// UseCase use case для расчета условий отмены бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	policyRepo      PolicyRepository
	slotCatalog     SlotCatalog
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	policyRepo PolicyRepository,
	slotCatalog SlotCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policyRepo:      policyRepo,
		slotCatalog:     slotCatalog,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute считает условия отмены бронирования на текущий момент:
// возможна ли отмена по дедлайну и какой штраф будет удержан
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancellationQuote: reservation=%d, actor=%d role=%s",
		req.ReservationID, req.Actor.ID, req.Actor.Role)

	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancellationQuote: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancellationQuote: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if !req.Actor.IsOperator() {
		if reservation.Customer.UserID == nil || *reservation.Customer.UserID != req.Actor.ID {
			uc.logger.Warn("CancellationQuote: access denied for actor=%d to reservation id=%d",
				req.Actor.ID, req.ReservationID)
			return nil, ErrAccessDenied
		}
	}

	if !reservation.CanBeCancelled() {
		uc.logger.Warn("CancellationQuote: reservation id=%d is not cancellable, status=%s",
			req.ReservationID, reservation.Status)
		return nil, ErrNotCancellable
	}

	storePolicy, err := uc.policyRepo.GetStorePolicy(ctx)
	if err != nil {
		uc.logger.Error("CancellationQuote: failed to get store policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get store policy: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	startAt := uc.reservationStartTime(ctx, reservation)

	decision := policy.CanCancel(now, startAt, storePolicy)
	if !decision.Allowed {
		return &Response{
			ReservationID:  req.ReservationID,
			Allowed:        false,
			Reason:         decision.Reason,
			OriginalAmount: reservation.TotalAmount,
		}, nil
	}

	fee := policy.CalculateCancellationFee(reservation.TotalAmount, now, startAt)

	return &Response{
		ReservationID:  req.ReservationID,
		Allowed:        true,
		OriginalAmount: reservation.TotalAmount,
		FeeRate:        fee.FeeRate,
		FeeAmount:      fee.FeeAmount,
		RefundAmount:   fee.RefundAmount,
	}, nil
}

// reservationStartTime вычисляет момент начала бронирования: дата плюс
// начало самого раннего из занятых слотов. Недоступный каталог или
// выпавшие из него слоты деградируют к началу суток
func (uc *UseCase) reservationStartTime(ctx context.Context, r *domain.Reservation) time.Time {
	startOfDay := time.Date(
		r.ReservationDate.Year(), r.ReservationDate.Month(), r.ReservationDate.Day(),
		0, 0, 0, 0, r.ReservationDate.Location(),
	)

	slots, err := uc.slotCatalog.GetAll(ctx)
	if err != nil {
		uc.logger.Warn("CancellationQuote: catalog unavailable for reservation id=%d: %v", r.ID, err)
		return startOfDay
	}

	earliest := -1
	for _, slot := range slots {
		if !r.HoldsSlot(slot.ID) {
			continue
		}
		window, err := slot.Window()
		if err != nil {
			continue
		}
		if minutes := window.Start.Minutes(); earliest < 0 || minutes < earliest {
			earliest = minutes
		}
	}

	if earliest < 0 {
		return startOfDay
	}
	return startOfDay.Add(time.Duration(earliest) * time.Minute)
}
