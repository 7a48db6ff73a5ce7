package pricing

import (
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// Quote computes the total cost of reserving slotCount time slots at the
// facility on the given date: a flat per-slot rate, weekend or weekday.
// No proration, no per-slot differential pricing, no holiday calendar.
// slotCount of zero yields zero; rejecting empty slot sets is the
// caller's responsibility. The result is persisted on the reservation at
// creation time and is authoritative thereafter.
func Quote(facility *domain.Facility, date time.Time, slotCount int) int64 {
	unit := facility.WeekdayPrice
	if IsWeekend(date) {
		unit = facility.WeekendPrice
	}
	return unit * int64(slotCount)
}

// IsWeekend возвращает true для субботы и воскресенья
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
