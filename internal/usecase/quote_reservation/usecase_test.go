package quote_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	facilityRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/facility"
)

type stubFacilityRepo struct {
	facility *domain.Facility
}

func (s *stubFacilityRepo) GetFacility(_ context.Context, id int64) (*domain.Facility, error) {
	if s.facility == nil || s.facility.ID != id {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return s.facility, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestQuoteReservation(t *testing.T) {
	uc := NewUseCase(&stubFacilityRepo{facility: &domain.Facility{
		ID:           1,
		WeekdayPrice: 50000,
		WeekendPrice: 60000,
		IsActive:     true,
	}}, nopLogger{})

	saturday := time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	t.Run("weekend rate applies on saturday", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			FacilityID: 1, Date: saturday, TimeSlots: []int64{1, 2},
		})
		require.NoError(t, err)

		assert.True(t, resp.IsWeekend)
		assert.Equal(t, int64(60000), resp.UnitPrice)
		assert.Equal(t, int64(120000), resp.TotalAmount)
	})

	t.Run("weekday rate applies on tuesday", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			FacilityID: 1, Date: tuesday, TimeSlots: []int64{1, 2},
		})
		require.NoError(t, err)

		assert.False(t, resp.IsWeekend)
		assert.Equal(t, int64(50000), resp.UnitPrice)
		assert.Equal(t, int64(100000), resp.TotalAmount)
	})

	t.Run("empty slot set quotes to zero", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			FacilityID: 1, Date: tuesday,
		})
		require.NoError(t, err)

		assert.Equal(t, 0, resp.SlotCount)
		assert.Equal(t, int64(0), resp.TotalAmount)
	})

	t.Run("duplicate slot ids are rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			FacilityID: 1, Date: tuesday, TimeSlots: []int64{1, 1},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("re-quote is idempotent until prices change", func(t *testing.T) {
		repo := &stubFacilityRepo{facility: &domain.Facility{
			ID:           2,
			WeekdayPrice: 50000,
			WeekendPrice: 60000,
			IsActive:     true,
		}}
		uc := NewUseCase(repo, nopLogger{})
		req := &Request{FacilityID: 2, Date: tuesday, TimeSlots: []int64{1, 2}}

		first, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		second, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first.TotalAmount, second.TotalAmount)

		repo.facility.WeekdayPrice = 70000
		third, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(140000), third.TotalAmount)
	})

	t.Run("unknown facility", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			FacilityID: 99, Date: tuesday, TimeSlots: []int64{1},
		})
		assert.ErrorIs(t, err, ErrFacilityNotFound)
	})
}
