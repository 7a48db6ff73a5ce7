package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

func TestQuote(t *testing.T) {
	facility := &domain.Facility{
		WeekdayPrice: 25000,
		WeekendPrice: 30000,
	}

	tuesday := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)

	t.Run("weekday rate", func(t *testing.T) {
		assert.Equal(t, int64(50000), Quote(facility, tuesday, 2))
	})

	t.Run("saturday rate", func(t *testing.T) {
		assert.Equal(t, int64(60000), Quote(facility, saturday, 2))
	})

	t.Run("sunday rate", func(t *testing.T) {
		assert.Equal(t, int64(30000), Quote(facility, sunday, 1))
	})

	t.Run("zero slots yields zero", func(t *testing.T) {
		assert.Equal(t, int64(0), Quote(facility, saturday, 0))
	})
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC))) // пятница
	assert.True(t, IsWeekend(time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsWeekend(time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsWeekend(time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC))) // понедельник
}
