package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	facilityRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/facility"
)

type stubReservationRepo struct {
	active []*domain.Reservation
}

func (s *stubReservationRepo) GetActiveByFacilityAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return s.active, nil
}

type stubFacilityRepo struct {
	facilityID int64
	sites      []*domain.Site
}

func (s *stubFacilityRepo) GetFacility(_ context.Context, id int64) (*domain.Facility, error) {
	if id != s.facilityID {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return &domain.Facility{ID: id, IsActive: true}, nil
}

func (s *stubFacilityRepo) GetSitesByFacility(_ context.Context, _ int64) ([]*domain.Site, error) {
	return s.sites, nil
}

type stubCatalog struct {
	slots []domain.TimeSlot
}

func (s *stubCatalog) GetAll(_ context.Context) ([]domain.TimeSlot, error) {
	return s.slots, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetAvailability(t *testing.T) {
	date := time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)

	catalog := &stubCatalog{slots: []domain.TimeSlot{
		{ID: 1, Name: "1부", Time: "10:00-13:00", SortOrder: 1},
		{ID: 2, Name: "2부", Time: "13:00-16:00", SortOrder: 2},
	}}

	facilities := &stubFacilityRepo{
		facilityID: 1,
		sites: []*domain.Site{
			{ID: 10, FacilityID: 1, SiteNumber: 1, Name: "A-1"},
			{ID: 11, FacilityID: 1, SiteNumber: 2, Name: "A-2"},
		},
	}

	t.Run("active reservation occupies its slots only", func(t *testing.T) {
		reservations := &stubReservationRepo{active: []*domain.Reservation{
			{ID: 100, SiteID: 10, Status: domain.StatusPending, TimeSlots: []int64{2}},
		}}

		uc := NewUseCase(reservations, facilities, catalog, nopLogger{})
		resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: date})
		require.NoError(t, err)

		require.Len(t, resp.Sites, 2)

		siteA := resp.Sites[0]
		assert.Equal(t, int64(10), siteA.SiteID)
		assert.True(t, siteA.Slots[0].Available)
		assert.False(t, siteA.Slots[1].Available)

		// Другое место не затронуто
		siteB := resp.Sites[1]
		assert.True(t, siteB.Slots[0].Available)
		assert.True(t, siteB.Slots[1].Available)
	})

	t.Run("no reservations means everything is available", func(t *testing.T) {
		uc := NewUseCase(&stubReservationRepo{}, facilities, catalog, nopLogger{})
		resp, err := uc.Execute(context.Background(), &Request{FacilityID: 1, Date: date})
		require.NoError(t, err)

		for _, site := range resp.Sites {
			for _, slot := range site.Slots {
				assert.True(t, slot.Available)
			}
		}
	})

	t.Run("unknown facility", func(t *testing.T) {
		uc := NewUseCase(&stubReservationRepo{}, facilities, catalog, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{FacilityID: 99, Date: date})
		assert.ErrorIs(t, err, ErrFacilityNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := NewUseCase(&stubReservationRepo{}, facilities, catalog, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{FacilityID: 0, Date: date})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{FacilityID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
