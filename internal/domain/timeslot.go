package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/BBQ-ReservationService/pkg/types"
)

var (
	// ErrInvalidTimeSlot возвращается при некорректном описании слота
	ErrInvalidTimeSlot = errors.New("domain: invalid time slot")

	// ErrOverlappingTimeSlots возвращается, когда окна каталога пересекаются
	ErrOverlappingTimeSlots = errors.New("domain: time slot windows overlap")
)

// TimeSlot is one of a small fixed set of named daily time windows,
// referenced by a small integer id. Deployment-wide configuration, not
// user data: reservations store only the id, the label is resolved (and
// snapshotted) at booking time.
type TimeSlot struct {
	ID        int64
	Name      string // display label, e.g. "1부"
	Time      string // window, e.g. "10:00-14:00"
	SortOrder int
}

// Validate проверяет формат временного окна (HH:MM-HH:MM)
func (s *TimeSlot) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidTimeSlot)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: id=%d: name is required", ErrInvalidTimeSlot, s.ID)
	}
	if _, err := types.ParseTimeRange(s.Time); err != nil {
		return fmt.Errorf("%w: id=%d: %v", ErrInvalidTimeSlot, s.ID, err)
	}
	return nil
}

// Window возвращает разобранное временное окно слота
func (s *TimeSlot) Window() (types.TimeRange, error) {
	return types.ParseTimeRange(s.Time)
}

// FallbackSlotLabel is the label used when a stored slot id is no longer
// present in the catalog. Slot display must never block rendering, so
// unknown ids degrade to this instead of failing.
func FallbackSlotLabel(slotID int64) string {
	return fmt.Sprintf("%d부 (시간 미정)", slotID)
}

// ValidateCatalog validates every entry and enforces the catalog-wide
// invariant the availability check relies on: windows sorted by start time
// must not overlap (the set-overlap availability test is only correct for
// mutually exclusive windows). Updates violating this are rejected.
func ValidateCatalog(slots []TimeSlot) error {
	if len(slots) == 0 {
		return fmt.Errorf("%w: catalog must not be empty", ErrInvalidTimeSlot)
	}

	windows := make([]types.TimeRange, len(slots))
	seen := make(map[int64]struct{}, len(slots))

	for i, slot := range slots {
		if err := slot.Validate(); err != nil {
			return err
		}
		if _, dup := seen[slot.ID]; dup {
			return fmt.Errorf("%w: duplicate id=%d", ErrInvalidTimeSlot, slot.ID)
		}
		seen[slot.ID] = struct{}{}

		window, err := slot.Window()
		if err != nil {
			return fmt.Errorf("%w: id=%d: %v", ErrInvalidTimeSlot, slot.ID, err)
		}
		windows[i] = window
	}

	// Сортируем окна по началу и проверяем, что каждое следующее
	// начинается не раньше конца предыдущего
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.IsBefore(windows[j].Start)
	})

	for i := 1; i < len(windows); i++ {
		if windows[i].Start.IsBefore(windows[i-1].End) {
			return fmt.Errorf("%w: %s and %s", ErrOverlappingTimeSlots, windows[i-1], windows[i])
		}
	}

	return nil
}
