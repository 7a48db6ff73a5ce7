package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCatalog(t *testing.T) {
	valid := []TimeSlot{
		{ID: 1, Name: "1부", Time: "10:00-13:00", SortOrder: 1},
		{ID: 2, Name: "2부", Time: "13:00-16:00", SortOrder: 2},
		{ID: 3, Name: "3부", Time: "16:00-19:00", SortOrder: 3},
	}

	t.Run("valid catalog passes", func(t *testing.T) {
		assert.NoError(t, ValidateCatalog(valid))
	})

	t.Run("empty catalog is rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateCatalog(nil), ErrInvalidTimeSlot)
	})

	t.Run("boundary-touching windows are not an overlap", func(t *testing.T) {
		slots := []TimeSlot{
			{ID: 1, Name: "오전", Time: "10:00-14:00"},
			{ID: 2, Name: "오후", Time: "14:00-18:00"},
		}
		assert.NoError(t, ValidateCatalog(slots))
	})

	t.Run("overlapping windows are rejected", func(t *testing.T) {
		slots := []TimeSlot{
			{ID: 1, Name: "오전", Time: "10:00-14:00"},
			{ID: 2, Name: "오후", Time: "13:00-18:00"},
		}
		assert.ErrorIs(t, ValidateCatalog(slots), ErrOverlappingTimeSlots)
	})

	t.Run("overlap is detected regardless of input order", func(t *testing.T) {
		slots := []TimeSlot{
			{ID: 2, Name: "오후", Time: "13:00-18:00"},
			{ID: 1, Name: "오전", Time: "10:00-14:00"},
		}
		assert.ErrorIs(t, ValidateCatalog(slots), ErrOverlappingTimeSlots)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		slots := []TimeSlot{
			{ID: 1, Name: "오전", Time: "10:00-14:00"},
			{ID: 1, Name: "오후", Time: "14:00-18:00"},
		}
		assert.ErrorIs(t, ValidateCatalog(slots), ErrInvalidTimeSlot)
	})

	t.Run("reversed window is rejected", func(t *testing.T) {
		slots := []TimeSlot{
			{ID: 1, Name: "야간", Time: "22:00-02:00"},
		}
		assert.ErrorIs(t, ValidateCatalog(slots), ErrInvalidTimeSlot)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		slots := []TimeSlot{
			{ID: 1, Time: "10:00-14:00"},
		}
		assert.ErrorIs(t, ValidateCatalog(slots), ErrInvalidTimeSlot)
	})
}

func TestFallbackSlotLabel(t *testing.T) {
	assert.Equal(t, "5부 (시간 미정)", FallbackSlotLabel(5))
}
