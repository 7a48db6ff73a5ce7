package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/BBQ-ReservationService/internal/policy"
	"github.com/m04kA/BBQ-ReservationService/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	reservationRepo ReservationRepository
	policyRepo      PolicyRepository
	slotCatalog     SlotCatalog
	txManager       TransactionManager
	logger          Logger

	now func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	policyRepo PolicyRepository,
	slotCatalog SlotCatalog,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		policyRepo:      policyRepo,
		slotCatalog:     slotCatalog,
		txManager:       txManager,
		logger:          logger,
		now:             time.Now,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои бронирования, оператор - любые.
// Гостевые бронирования доступны только оператору
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for actor=%d role=%s", id, actor.ID, actor.Role)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkReadAccess(reservation, actor); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to reservation id=%d", actor.ID, id)
		return nil, err
	}

	s.resolveDisplayLabels(ctx, reservation)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest, actor domain.Actor) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	// Чужая история доступна только оператору
	if req.UserID != actor.ID && !actor.IsOperator() {
		s.logger.Warn("GetUserReservations: access denied for actor=%d to user=%d history", actor.ID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	for _, reservation := range reservations {
		s.resolveDisplayLabels(ctx, reservation)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetFacilityReservations получает бронирования объекта с гибкой фильтрацией
// Поддерживает фильтрацию по месту, периоду, статусу и включение отменённых.
// Доступно только оператору
func (s *Service) GetFacilityReservations(ctx context.Context, req *models.GetFacilityReservationsRequest, actor domain.Actor) (*models.ReservationListResponse, error) {
	s.logger.Info("GetFacilityReservations: fetching reservations for facility=%d by actor=%d", req.FacilityID, actor.ID)

	if !actor.IsOperator() {
		s.logger.Warn("GetFacilityReservations: access denied for actor=%d", actor.ID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityReservations: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityReservations: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityReservations - repository error: %v", ErrInternal, err)
	}

	for _, reservation := range reservations {
		s.resolveDisplayLabels(ctx, reservation)
	}

	s.logger.Info("GetFacilityReservations: fetched %d reservations for facility=%d", len(reservations), req.FacilityID)
	return models.FromDomainReservationList(reservations), nil
}

// Transition применяет действие жизненного цикла к бронированию.
// Права: approve/reject/mark_refunded - только оператор; cancel - владелец
// бронирования или оператор. Отмена клиентом дополнительно проверяется
// против дедлайна отмены; оператор может отменить в любой момент
func (s *Service) Transition(ctx context.Context, id int64, actor domain.Actor, req *models.TransitionRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Transition: applying action=%s to reservation id=%d by actor=%d role=%s",
		req.Action, id, actor.ID, actor.Role)

	action, err := models.ToDomainTransitionAction(req.Action)
	if err != nil {
		s.logger.Warn("Transition: invalid action=%s for reservation id=%d", req.Action, id)
		return nil, fmt.Errorf("%w: invalid action", ErrInvalidInput)
	}

	if action != domain.ActionCancel && !actor.IsOperator() {
		s.logger.Warn("Transition: action=%s requires operator, actor=%d", action, actor.ID)
		return nil, ErrAccessDenied
	}

	if err := validateAuditTrail(action, req); err != nil {
		s.logger.Warn("Transition: audit validation failed for reservation id=%d: %v", id, err)
		return nil, err
	}

	var updated *domain.Reservation

	// Чтение и обновление в одной транзакции, чтобы конкурирующие
	// переходы не затирали друг друга
	txErr := s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		if action == domain.ActionCancel {
			if err := s.checkCancelAccess(ctx, reservation, actor); err != nil {
				return err
			}
		}

		result, err := reservation.ApplyTransition(action)
		if err != nil {
			return ErrInvalidTransition
		}

		if err := s.reservationRepo.ApplyTransition(ctx, id, result, req.AdminMemo, req.CancellationReason); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		updated, err = s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrReservationNotFound) ||
			errors.Is(txErr, ErrAccessDenied) ||
			errors.Is(txErr, ErrInvalidTransition) ||
			errors.Is(txErr, ErrCancellationDeadlinePassed) {
			return nil, txErr
		}
		s.logger.Error("Transition: transaction failed for reservation id=%d: %v", id, txErr)
		return nil, fmt.Errorf("%w: Transition - transaction error: %v", ErrInternal, txErr)
	}

	s.logger.Info("Transition: reservation id=%d moved to status=%s payment=%s",
		id, updated.Status, updated.PaymentStatus)
	s.resolveDisplayLabels(ctx, updated)
	return models.FromDomainReservation(updated), nil
}

// ReservationStartTime вычисляет момент начала бронирования: дата плюс
// начало самого раннего из занятых слотов. Слоты, выпавшие из каталога,
// пропускаются; если ни один не найден - начало суток даты бронирования
func (s *Service) ReservationStartTime(ctx context.Context, r *domain.Reservation) time.Time {
	startOfDay := time.Date(
		r.ReservationDate.Year(), r.ReservationDate.Month(), r.ReservationDate.Day(),
		0, 0, 0, 0, r.ReservationDate.Location(),
	)

	slots, err := s.slotCatalog.GetAll(ctx)
	if err != nil {
		s.logger.Warn("ReservationStartTime: catalog unavailable for reservation id=%d: %v", r.ID, err)
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

// Вспомогательные методы

// Каждый переход обязан оставлять запись для аудита: отмена - причину
// отмены, операторские действия - примечание администратора
func validateAuditTrail(action domain.TransitionAction, req *models.TransitionRequest) error {
	if action == domain.ActionCancel {
		if req.CancellationReason == nil || strings.TrimSpace(*req.CancellationReason) == "" {
			return fmt.Errorf("%w: cancellationReason is required for cancel", ErrInvalidInput)
		}
	} else {
		if req.AdminMemo == nil || strings.TrimSpace(*req.AdminMemo) == "" {
			return fmt.Errorf("%w: adminMemo is required for %s", ErrInvalidInput, action)
		}
	}

	if req.AdminMemo != nil && len(*req.AdminMemo) > domain.MaxAdminMemoLength {
		return fmt.Errorf("%w: adminMemo exceeds %d characters", ErrInvalidInput, domain.MaxAdminMemoLength)
	}
	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// resolveDisplayLabels достраивает снимок меток слотов для записей,
// сохранённых без него: метки разрешаются из текущего каталога,
// выпавшие слоты получают метку-заглушку
func (s *Service) resolveDisplayLabels(ctx context.Context, r *domain.Reservation) {
	if len(r.SlotLabels) == len(r.TimeSlots) {
		return
	}
	r.SlotLabels = s.slotCatalog.Labels(ctx, r.TimeSlots)
}

func (s *Service) checkReadAccess(r *domain.Reservation, actor domain.Actor) error {
	if actor.IsOperator() {
		return nil
	}
	if r.Customer.UserID != nil && *r.Customer.UserID == actor.ID {
		return nil
	}
	return ErrAccessDenied
}

func (s *Service) checkCancelAccess(ctx context.Context, r *domain.Reservation, actor domain.Actor) error {
	if actor.IsOperator() {
		return nil
	}

	if r.Customer.UserID == nil || *r.Customer.UserID != actor.ID {
		return ErrAccessDenied
	}

	storePolicy, err := s.policyRepo.GetStorePolicy(ctx)
	if err != nil {
		return fmt.Errorf("%w: checkCancelAccess - failed to load policy: %v", ErrInternal, err)
	}

	startAt := s.ReservationStartTime(ctx, r)
	decision := policy.CanCancel(s.now(), startAt, storePolicy)
	if !decision.Allowed {
		s.logger.Warn("checkCancelAccess: deadline passed for reservation id=%d: %s", r.ID, decision.Reason)
		return fmt.Errorf("%w: %s", ErrCancellationDeadlinePassed, decision.Reason)
	}

	return nil
}
