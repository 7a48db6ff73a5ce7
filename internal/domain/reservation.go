package domain

import (
	"errors"
	"time"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// PaymentStatus represents the payment sub-state of a reservation
// Correlated with but independent of ReservationStatus: a cancelled
// reservation may still be waiting for a manual refund
type PaymentStatus string

const (
	PaymentWaiting   PaymentStatus = "waiting"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// TransitionAction действие над жизненным циклом бронирования
type TransitionAction string

const (
	ActionApprove      TransitionAction = "approve"       // pending -> confirmed (оператор)
	ActionReject       TransitionAction = "reject"        // pending -> cancelled + refund (оператор)
	ActionCancel       TransitionAction = "cancel"        // pending|confirmed -> cancelled
	ActionMarkRefunded TransitionAction = "mark_refunded" // возврат оплаты по отменённому бронированию (оператор)
)

// ErrInvalidTransition возвращается при недопустимом переходе статуса
var ErrInvalidTransition = errors.New("domain: invalid reservation transition")

// CustomerInfo identifies who made the reservation: either a registered
// user (UserID set) or a guest checkout (name/phone/email captured inline)
type CustomerInfo struct {
	UserID     *int64
	GuestName  *string
	GuestPhone *string
	GuestEmail *string
}

// IsGuest returns true if the reservation was made via guest checkout
func (c *CustomerInfo) IsGuest() bool {
	return c.UserID == nil
}

// Reservation represents a booking of one site, for one date, for one or
// more time slots. TotalAmount is computed at creation and frozen - later
// price changes never retroactively affect it. SlotLabels is a snapshot of
// the resolved catalog labels at creation time, so historical reservations
// stay displayable even if the catalog is renamed later.
type Reservation struct {
	ID              int64
	FacilityID      int64
	SiteID          int64
	ReservationDate time.Time
	TimeSlots       []int64
	SlotLabels      []string
	TotalAmount     int64
	Status          ReservationStatus
	PaymentStatus   PaymentStatus

	Customer        CustomerInfo
	SpecialRequests *string
	AdminMemo       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation holds its slots
// (занимает слоты для проверки доступности)
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// HoldsSlot returns true if the reservation holds the given slot id
func (r *Reservation) HoldsSlot(slotID int64) bool {
	for _, id := range r.TimeSlots {
		if id == slotID {
			return true
		}
	}
	return false
}

// OverlapsSlots returns true if the reservation holds any of the given slots
func (r *Reservation) OverlapsSlots(slotIDs []int64) bool {
	for _, id := range slotIDs {
		if r.HoldsSlot(id) {
			return true
		}
	}
	return false
}

// TransitionResult результат применения перехода
type TransitionResult struct {
	Status           ReservationStatus
	PaymentStatus    PaymentStatus
	StampCancelledAt bool
	FreesSlots       bool
}

// ApplyTransition validates the action against the current state and
// returns the resulting statuses. No transition leaves cancelled (except
// the payment-only mark_refunded) and none reaches pending.
func (r *Reservation) ApplyTransition(action TransitionAction) (TransitionResult, error) {
	switch action {
	case ActionApprove:
		if r.Status != StatusPending {
			return TransitionResult{}, ErrInvalidTransition
		}
		return TransitionResult{
			Status:        StatusConfirmed,
			PaymentStatus: PaymentCompleted,
		}, nil

	case ActionReject:
		if r.Status != StatusPending {
			return TransitionResult{}, ErrInvalidTransition
		}
		return TransitionResult{
			Status:           StatusCancelled,
			PaymentStatus:    PaymentRefunded,
			StampCancelledAt: true,
			FreesSlots:       true,
		}, nil

	case ActionCancel:
		if !r.CanBeCancelled() {
			return TransitionResult{}, ErrInvalidTransition
		}
		// Оплата остаётся как есть: возврат оформляется отдельным
		// действием mark_refunded ("отменено, возврат в ожидании" -
		// валидное промежуточное состояние)
		return TransitionResult{
			Status:           StatusCancelled,
			PaymentStatus:    r.PaymentStatus,
			StampCancelledAt: true,
			FreesSlots:       true,
		}, nil

	case ActionMarkRefunded:
		if r.Status != StatusCancelled || r.PaymentStatus == PaymentRefunded {
			return TransitionResult{}, ErrInvalidTransition
		}
		return TransitionResult{
			Status:        StatusCancelled,
			PaymentStatus: PaymentRefunded,
		}, nil

	default:
		return TransitionResult{}, ErrInvalidTransition
	}
}

// FacilityReservationsFilter фильтр для получения бронирований объекта
type FacilityReservationsFilter struct {
	FacilityID      int64              // Обязательный параметр
	SiteID          *int64             // Фильтр по месту (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые бронирования
}
