package cancellation_quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/BBQ-ReservationService/pkg/ptr"
)

type stubReservationRepo struct {
	reservation *domain.Reservation
}

func (s *stubReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if s.reservation == nil || s.reservation.ID != id {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return s.reservation, nil
}

type stubPolicyRepo struct {
	policy domain.StorePolicy
}

func (s *stubPolicyRepo) GetStorePolicy(_ context.Context) (domain.StorePolicy, error) {
	return s.policy, nil
}

type stubCatalog struct {
	slots []domain.TimeSlot
	err   error
}

func (s *stubCatalog) GetAll(_ context.Context) ([]domain.TimeSlot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.slots, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(r *domain.Reservation, catalog *stubCatalog, now time.Time) *UseCase {
	// Дедлайн 24 часа, штраф начинается за 48 часов до начала
	policyRepo := &stubPolicyRepo{policy: domain.StorePolicy{
		MaxAdvanceBookingDays:     30,
		MinAdvanceBookingHours:    2,
		CancellationDeadlineHours: 24,
		PenaltyThresholdHours:     48,
	}}

	uc := NewUseCase(&stubReservationRepo{reservation: r}, policyRepo, catalog, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestCancellationQuote(t *testing.T) {
	// Начало бронирования: 2025-10-11 10:00 (слот "1부")
	date := time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)
	startAt := date.Add(10 * time.Hour)

	catalog := &stubCatalog{slots: []domain.TimeSlot{
		{ID: 1, Name: "1부", Time: "10:00-13:00", SortOrder: 1},
		{ID: 2, Name: "2부", Time: "13:00-16:00", SortOrder: 2},
	}}

	owner := domain.Actor{ID: 42, Role: domain.RoleCustomer}

	newReservation := func() *domain.Reservation {
		return &domain.Reservation{
			ID:              100,
			FacilityID:      1,
			SiteID:          10,
			ReservationDate: date,
			TimeSlots:       []int64{1, 2},
			TotalAmount:     100000,
			Status:          domain.StatusConfirmed,
			PaymentStatus:   domain.PaymentCompleted,
			Customer:        domain.CustomerInfo{UserID: ptr.Ptr(int64(42))},
		}
	}

	t.Run("free cancellation outside penalty threshold", func(t *testing.T) {
		uc := newTestUseCase(newReservation(), catalog, startAt.Add(-72*time.Hour))

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 100, Actor: owner})
		require.NoError(t, err)

		assert.True(t, resp.Allowed)
		assert.Equal(t, int64(100000), resp.OriginalAmount)
		assert.Equal(t, 0.0, resp.FeeRate)
		assert.Equal(t, int64(0), resp.FeeAmount)
		assert.Equal(t, int64(100000), resp.RefundAmount)
	})

	t.Run("penalty tier inside 48 hours", func(t *testing.T) {
		uc := newTestUseCase(newReservation(), catalog, startAt.Add(-38*time.Hour))

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 100, Actor: owner})
		require.NoError(t, err)

		assert.True(t, resp.Allowed)
		assert.Equal(t, 0.10, resp.FeeRate)
		assert.Equal(t, int64(10000), resp.FeeAmount)
		assert.Equal(t, int64(90000), resp.RefundAmount)
	})

	t.Run("past the deadline cancellation is disallowed", func(t *testing.T) {
		uc := newTestUseCase(newReservation(), catalog, startAt.Add(-22*time.Hour))

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 100, Actor: owner})
		require.NoError(t, err)

		assert.False(t, resp.Allowed)
		assert.NotEmpty(t, resp.Reason)
		assert.Equal(t, int64(100000), resp.OriginalAmount)
		assert.Equal(t, int64(0), resp.FeeAmount)
	})

	t.Run("catalog failure degrades start to midnight", func(t *testing.T) {
		// 23 часа до полуночи: от начала суток дедлайн уже пройден,
		// хотя от 10:00 отмена была бы разрешена
		brokenCatalog := &stubCatalog{err: errors.New("catalog down")}
		uc := newTestUseCase(newReservation(), brokenCatalog, date.Add(-23*time.Hour))

		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 100, Actor: owner})
		require.NoError(t, err)
		assert.False(t, resp.Allowed)
	})

	t.Run("cancelled reservation is not cancellable", func(t *testing.T) {
		r := newReservation()
		r.Status = domain.StatusCancelled
		uc := newTestUseCase(r, catalog, startAt.Add(-72*time.Hour))

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 100, Actor: owner})
		assert.ErrorIs(t, err, ErrNotCancellable)
	})

	t.Run("access denied for foreign reservation", func(t *testing.T) {
		uc := newTestUseCase(newReservation(), catalog, startAt.Add(-72*time.Hour))

		stranger := domain.Actor{ID: 7, Role: domain.RoleCustomer}
		_, err := uc.Execute(context.Background(), &Request{ReservationID: 100, Actor: stranger})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("operator can quote guest reservation", func(t *testing.T) {
		r := newReservation()
		r.Customer = domain.CustomerInfo{
			GuestName:  ptr.Ptr("홍길동"),
			GuestPhone: ptr.Ptr("010-1234-5678"),
		}
		uc := newTestUseCase(r, catalog, startAt.Add(-72*time.Hour))

		operator := domain.Actor{ID: 1, Role: domain.RoleOperator}
		resp, err := uc.Execute(context.Background(), &Request{ReservationID: 100, Actor: operator})
		require.NoError(t, err)
		assert.True(t, resp.Allowed)
	})

	t.Run("reservation not found", func(t *testing.T) {
		uc := newTestUseCase(newReservation(), catalog, startAt.Add(-72*time.Hour))

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 999, Actor: owner})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
