package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	facilityRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/BBQ-ReservationService/pkg/ptr"
)

// Стабы зависимостей

type stubReservationRepo struct {
	active    []*domain.Reservation
	createErr error
	created   *domain.Reservation
}

func (s *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	res.ID = 101
	res.CreatedAt = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	res.UpdatedAt = res.CreatedAt
	s.created = res
	return res, nil
}

func (s *stubReservationRepo) GetActiveBySiteAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return s.active, nil
}

type stubFacilityRepo struct {
	facility *domain.Facility
	site     *domain.Site
}

func (s *stubFacilityRepo) GetFacility(_ context.Context, id int64) (*domain.Facility, error) {
	if s.facility == nil || s.facility.ID != id {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return s.facility, nil
}

func (s *stubFacilityRepo) GetSite(_ context.Context, id int64) (*domain.Site, error) {
	if s.site == nil || s.site.ID != id {
		return nil, facilityRepo.ErrSiteNotFound
	}
	return s.site, nil
}

type stubPolicyRepo struct {
	policy domain.StorePolicy
}

func (s *stubPolicyRepo) GetStorePolicy(_ context.Context) (domain.StorePolicy, error) {
	return s.policy, nil
}

type stubSlotRepo struct {
	catalog []domain.TimeSlot
}

func (s *stubSlotRepo) GetAll(_ context.Context) ([]domain.TimeSlot, error) {
	return s.catalog, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Подготовка окружения: объект с местом, каталог из трех слотов,
// текущее время за два дня до даты бронирования

func testCatalog() []domain.TimeSlot {
	return []domain.TimeSlot{
		{ID: 1, Name: "1부", Time: "10:00-13:00", SortOrder: 1},
		{ID: 2, Name: "2부", Time: "13:00-16:00", SortOrder: 2},
		{ID: 3, Name: "3부", Time: "16:00-19:00", SortOrder: 3},
	}
}

func newTestUseCase(resRepo *stubReservationRepo) *UseCase {
	uc := NewUseCase(
		resRepo,
		&stubFacilityRepo{
			facility: &domain.Facility{ID: 1, WeekdayPrice: 25000, WeekendPrice: 30000, Capacity: 6, IsActive: true},
			site:     &domain.Site{ID: 10, FacilityID: 1, SiteNumber: 3, IsActive: true},
		},
		&stubPolicyRepo{policy: domain.DefaultStorePolicy()},
		&stubSlotRepo{catalog: testCatalog()},
		passthroughTxManager{},
		nopLogger{},
	)
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 9, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		FacilityID: 1,
		SiteID:     10,
		Date:       time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC), // суббота
		TimeSlots:  []int64{1, 2},
		UserID:     ptr.Ptr(int64(42)),
	}
}

func TestCreateReservation(t *testing.T) {
	t.Run("creates pending reservation with frozen weekend amount", func(t *testing.T) {
		repo := &stubReservationRepo{}
		uc := newTestUseCase(repo)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(101), resp.ID)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.Equal(t, string(domain.PaymentWaiting), resp.PaymentStatus)
		assert.Equal(t, int64(60000), resp.TotalAmount)
		assert.Equal(t, []string{"1부", "2부"}, resp.SlotLabels)
		assert.Equal(t, []int64{1, 2}, resp.TimeSlots)
	})

	t.Run("weekday date uses weekday rate", func(t *testing.T) {
		uc := newTestUseCase(&stubReservationRepo{})

		req := validRequest()
		req.Date = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC) // вторник
		uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 12, 12, 0, 0, 0, time.UTC)}

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), resp.TotalAmount)
	})

	t.Run("conflict with active reservation holding one of the slots", func(t *testing.T) {
		repo := &stubReservationRepo{
			active: []*domain.Reservation{
				{ID: 55, SiteID: 10, Status: domain.StatusConfirmed, TimeSlots: []int64{2, 3}},
			},
		}
		uc := newTestUseCase(repo)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotConflict)
		assert.Nil(t, repo.created)
	})

	t.Run("cancelled reservations do not block slots", func(t *testing.T) {
		// Репозиторий возвращает только активные бронирования,
		// отмененные до стаба не доходят
		repo := &stubReservationRepo{active: nil}
		uc := newTestUseCase(repo)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("unique constraint violation maps to slot conflict", func(t *testing.T) {
		repo := &stubReservationRepo{createErr: reservationRepo.ErrSlotTaken}
		uc := newTestUseCase(repo)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("unknown slot id", func(t *testing.T) {
		uc := newTestUseCase(&stubReservationRepo{})

		req := validRequest()
		req.TimeSlots = []int64{1, 9}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrUnknownTimeSlot)
	})

	t.Run("too soon to book", func(t *testing.T) {
		uc := newTestUseCase(&stubReservationRepo{})
		// Бронирование на сегодня: первый слот начинается в 10:00,
		// за два часа до него бронировать уже нельзя
		uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 11, 8, 0, 0, 0, time.UTC)}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrOutsideBookingWindow)
	})

	t.Run("too far in the future", func(t *testing.T) {
		uc := newTestUseCase(&stubReservationRepo{})

		req := validRequest()
		req.Date = time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideBookingWindow)
	})

	t.Run("site from another facility", func(t *testing.T) {
		uc := newTestUseCase(&stubReservationRepo{})
		uc.facilityRepo = &stubFacilityRepo{
			facility: &domain.Facility{ID: 1, WeekdayPrice: 25000, WeekendPrice: 30000, Capacity: 6, IsActive: true},
			site:     &domain.Site{ID: 10, FacilityID: 2, SiteNumber: 1, IsActive: true},
		}

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSiteNotFound)
	})

	t.Run("guest without phone is rejected", func(t *testing.T) {
		uc := newTestUseCase(&stubReservationRepo{})

		req := validRequest()
		req.UserID = nil
		req.GuestName = ptr.Ptr("홍길동")

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("guest with name and phone is accepted", func(t *testing.T) {
		repo := &stubReservationRepo{}
		uc := newTestUseCase(repo)

		req := validRequest()
		req.UserID = nil
		req.GuestName = ptr.Ptr("홍길동")
		req.GuestPhone = ptr.Ptr("010-1234-5678")

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Nil(t, resp.UserID)
		assert.Equal(t, "홍길동", *resp.GuestName)
	})

	t.Run("duplicate slot ids are rejected", func(t *testing.T) {
		uc := newTestUseCase(&stubReservationRepo{})

		req := validRequest()
		req.TimeSlots = []int64{1, 1}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty slot set is rejected", func(t *testing.T) {
		uc := newTestUseCase(&stubReservationRepo{})

		req := validRequest()
		req.TimeSlots = nil

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
