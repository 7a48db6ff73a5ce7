package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.SiteID <= 0 {
		return fmt.Errorf("%w: siteID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := validateSlotSet(req.TimeSlots); err != nil {
		return err
	}

	if err := validateCustomer(req); err != nil {
		return err
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests exceeds %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	return nil
}

// validateSlotSet проверяет набор запрошенных слотов: непустой,
// без дубликатов, в пределах лимита на одно бронирование
func validateSlotSet(slotIDs []int64) error {
	if len(slotIDs) == 0 {
		return fmt.Errorf("%w: at least one time slot is required", ErrInvalidInput)
	}

	if len(slotIDs) > domain.MaxTimeSlotsPerReservation {
		return fmt.Errorf("%w: at most %d time slots per reservation", ErrInvalidInput, domain.MaxTimeSlotsPerReservation)
	}

	seen := make(map[int64]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		if id <= 0 {
			return fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate slot id=%d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// validateCustomer проверяет идентификацию инициатора: либо
// зарегистрированный пользователь, либо гость с именем и телефоном
func validateCustomer(req *Request) error {
	if req.UserID != nil {
		if *req.UserID <= 0 {
			return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
		}
		return nil
	}

	if req.GuestName == nil || *req.GuestName == "" {
		return fmt.Errorf("%w: guestName is required for guest reservations", ErrInvalidInput)
	}
	if req.GuestPhone == nil || *req.GuestPhone == "" {
		return fmt.Errorf("%w: guestPhone is required for guest reservations", ErrInvalidInput)
	}

	return nil
}

// resolveSlots сопоставляет запрошенные id со слотами каталога.
// Любой id вне каталога делает запрос некорректным
func resolveSlots(catalog []domain.TimeSlot, slotIDs []int64) ([]domain.TimeSlot, error) {
	byID := make(map[int64]domain.TimeSlot, len(catalog))
	for _, slot := range catalog {
		byID[slot.ID] = slot
	}

	resolved := make([]domain.TimeSlot, 0, len(slotIDs))
	for _, id := range slotIDs {
		slot, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrUnknownTimeSlot, id)
		}
		resolved = append(resolved, slot)
	}

	return resolved, nil
}

// earliestStart возвращает момент начала самого раннего из слотов
// в привязке к дате бронирования
func earliestStart(date time.Time, slots []domain.TimeSlot) (time.Time, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	earliest := -1
	for _, slot := range slots {
		window, err := slot.Window()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: slot id=%d has invalid window: %v", ErrInternal, slot.ID, err)
		}
		if minutes := window.Start.Minutes(); earliest < 0 || minutes < earliest {
			earliest = minutes
		}
	}

	if earliest < 0 {
		return time.Time{}, fmt.Errorf("%w: empty slot set", ErrInternal)
	}

	return startOfDay.Add(time.Duration(earliest) * time.Minute), nil
}

// findConflict ищет активное бронирование, занимающее хотя бы один из
// запрошенных слотов
func findConflict(existing []*domain.Reservation, slotIDs []int64) *domain.Reservation {
	for _, reservation := range existing {
		if reservation.OverlapsSlots(slotIDs) {
			return reservation
		}
	}
	return nil
}
