package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := ParseTimeRange("10:00-14:00")
		assert.NoError(t, err)
		assert.Equal(t, "10:00", r.Start.String())
		assert.Equal(t, "14:00", r.End.String())
	})

	t.Run("spaces around dash are tolerated", func(t *testing.T) {
		r, err := ParseTimeRange("10:00 - 14:00")
		assert.NoError(t, err)
		assert.Equal(t, "10:00-14:00", r.String())
	})

	t.Run("reversed range is rejected", func(t *testing.T) {
		_, err := ParseTimeRange("14:00-10:00")
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("empty range is rejected", func(t *testing.T) {
		_, err := ParseTimeRange("10:00-10:00")
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		for _, s := range []string{"", "10:00", "10:00-14:00-18:00", "25:00-26:00", "ten-noon"} {
			_, err := ParseTimeRange(s)
			assert.ErrorIs(t, err, ErrInvalidTimeRange, "input %q", s)
		}
	})
}

func TestTimeRangeOverlaps(t *testing.T) {
	parse := func(s string) TimeRange {
		r, err := ParseTimeRange(s)
		assert.NoError(t, err)
		return r
	}

	morning := parse("10:00-14:00")
	afternoon := parse("14:00-18:00")
	midday := parse("12:00-16:00")

	assert.False(t, morning.Overlaps(afternoon), "boundary touch is not overlap")
	assert.False(t, afternoon.Overlaps(morning))
	assert.True(t, morning.Overlaps(midday))
	assert.True(t, midday.Overlaps(afternoon))
	assert.True(t, morning.Overlaps(morning))
}
