package policy

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// BookingDecision результат проверки окна бронирования
// Reason содержит готовый к показу пользователю текст
type BookingDecision struct {
	Allowed bool
	Reason  string
}

// CancelDecision результат проверки возможности отмены
type CancelDecision struct {
	Allowed        bool
	Reason         string
	PenaltyApplied bool
}

// CancellationFee расчет штрафа и возврата при отмене
type CancellationFee struct {
	FeeAmount    int64
	RefundAmount int64
	FeeRate      float64
}

// Tiered cancellation fee schedule by hours until the reservation
const (
	fullFeeThresholdHours = 2  // менее 2 часов - без возврата
	highFeeThresholdHours = 24 // менее 24 часов - 30%
	lowFeeThresholdHours  = 48 // менее 48 часов - 10%

	highFeeRate = 0.30
	lowFeeRate  = 0.10
)

// CanBook checks the advance-booking window: the proposed time must be
// strictly after now+minAdvanceHours and not after now+maxAdvanceDays.
// A proposal exactly at the minimum threshold is rejected.
func CanBook(now, proposed time.Time, p domain.StorePolicy) BookingDecision {
	minAllowed := now.Add(time.Duration(p.MinAdvanceBookingHours) * time.Hour)
	if !proposed.After(minAllowed) {
		return BookingDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("예약은 최소 %d시간 전에만 가능합니다", p.MinAdvanceBookingHours),
		}
	}

	maxAllowed := now.AddDate(0, 0, p.MaxAdvanceBookingDays)
	if proposed.After(maxAllowed) {
		return BookingDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("예약은 최대 %d일 이내만 가능합니다", p.MaxAdvanceBookingDays),
		}
	}

	return BookingDecision{Allowed: true}
}

// CanCancel checks the cancellation deadline. Cancellation is blocked once
// now has passed reservationAt-deadlineHours. When still allowed, a fee
// applies once now is inside the penalty threshold - a separate,
// independently configured policy from the deadline itself.
func CanCancel(now, reservationAt time.Time, p domain.StorePolicy) CancelDecision {
	deadline := reservationAt.Add(-time.Duration(p.CancellationDeadlineHours) * time.Hour)
	if now.After(deadline) {
		return CancelDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("이용 %d시간 전까지만 취소할 수 있습니다", p.CancellationDeadlineHours),
		}
	}

	penaltyFrom := reservationAt.Add(-time.Duration(p.PenaltyThresholdHours) * time.Hour)
	return CancelDecision{
		Allowed:        true,
		PenaltyApplied: now.After(penaltyFrom),
	}
}

// CalculateCancellationFee computes the tiered cancellation fee for the
// original amount given the time remaining until the reservation. Pure and
// total - it never fails; the caller must have already confirmed that
// cancellation is allowed.
func CalculateCancellationFee(originalAmount int64, now, reservationAt time.Time) CancellationFee {
	hoursUntil := reservationAt.Sub(now).Hours()

	var rate float64
	switch {
	case hoursUntil < fullFeeThresholdHours:
		rate = 1.0
	case hoursUntil < highFeeThresholdHours:
		rate = highFeeRate
	case hoursUntil < lowFeeThresholdHours:
		rate = lowFeeRate
	default:
		rate = 0.0
	}

	fee := int64(math.Round(float64(originalAmount) * rate))

	return CancellationFee{
		FeeAmount:    fee,
		RefundAmount: originalAmount - fee,
		FeeRate:      rate,
	}
}
