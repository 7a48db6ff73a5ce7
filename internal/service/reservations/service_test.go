package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/BBQ-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/BBQ-ReservationService/pkg/ptr"
)

type stubReservationRepo struct {
	reservation *domain.Reservation

	appliedResult *domain.TransitionResult
	appliedMemo   *string
	appliedReason *string
}

func (s *stubReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if s.reservation == nil || s.reservation.ID != id {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return s.reservation, nil
}

func (s *stubReservationRepo) GetByUserID(_ context.Context, userID int64, _ *domain.ReservationStatus) ([]*domain.Reservation, error) {
	if s.reservation != nil && s.reservation.Customer.UserID != nil && *s.reservation.Customer.UserID == userID {
		return []*domain.Reservation{s.reservation}, nil
	}
	return nil, nil
}

func (s *stubReservationRepo) GetByFacilityWithFilter(_ context.Context, _ domain.FacilityReservationsFilter) ([]*domain.Reservation, error) {
	if s.reservation == nil {
		return nil, nil
	}
	return []*domain.Reservation{s.reservation}, nil
}

func (s *stubReservationRepo) ApplyTransition(_ context.Context, id int64, result domain.TransitionResult, adminMemo *string, cancellationReason *string) error {
	if s.reservation == nil || s.reservation.ID != id {
		return reservationRepo.ErrReservationNotFound
	}

	s.appliedResult = &result
	s.appliedMemo = adminMemo
	s.appliedReason = cancellationReason

	s.reservation.Status = result.Status
	s.reservation.PaymentStatus = result.PaymentStatus
	if adminMemo != nil {
		s.reservation.AdminMemo = adminMemo
	}
	if cancellationReason != nil {
		s.reservation.CancellationReason = cancellationReason
	}
	if result.StampCancelledAt {
		cancelledAt := time.Now()
		s.reservation.CancelledAt = &cancelledAt
	}
	return nil
}

type stubPolicyRepo struct {
	policy domain.StorePolicy
}

func (s *stubPolicyRepo) GetStorePolicy(_ context.Context) (domain.StorePolicy, error) {
	return s.policy, nil
}

type stubCatalog struct {
	slots []domain.TimeSlot
}

func (s *stubCatalog) GetAll(_ context.Context) ([]domain.TimeSlot, error) {
	return s.slots, nil
}

func (s *stubCatalog) Labels(_ context.Context, slotIDs []int64) []string {
	labels := make([]string, 0, len(slotIDs))
	for _, id := range slotIDs {
		label := domain.FallbackSlotLabel(id)
		for _, slot := range s.slots {
			if slot.ID == id {
				label = slot.Name
				break
			}
		}
		labels = append(labels, label)
	}
	return labels
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	owner    = domain.Actor{ID: 42, Role: domain.RoleCustomer}
	stranger = domain.Actor{ID: 7, Role: domain.RoleCustomer}
	operator = domain.Actor{ID: 1, Role: domain.RoleOperator}
)

// Бронирование на 2025-10-11, начало в 10:00 (слот "1부")
var reservationDate = time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)

func testReservation(status domain.ReservationStatus, payment domain.PaymentStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              100,
		FacilityID:      1,
		SiteID:          10,
		ReservationDate: reservationDate,
		TimeSlots:       []int64{1, 2},
		SlotLabels:      []string{"1부", "2부"},
		TotalAmount:     100000,
		Status:          status,
		PaymentStatus:   payment,
		Customer:        domain.CustomerInfo{UserID: ptr.Ptr(int64(42))},
	}
}

func newTestService(repo *stubReservationRepo, now time.Time) *Service {
	policyRepo := &stubPolicyRepo{policy: domain.DefaultStorePolicy()}
	catalog := &stubCatalog{slots: []domain.TimeSlot{
		{ID: 1, Name: "1부", Time: "10:00-13:00", SortOrder: 1},
		{ID: 2, Name: "2부", Time: "13:00-16:00", SortOrder: 2},
	}}

	svc := NewService(repo, policyRepo, catalog, passthroughTxManager{}, nopLogger{})
	svc.now = func() time.Time { return now }
	return svc
}

func TestTransition(t *testing.T) {
	farBefore := reservationDate.Add(-72 * time.Hour)

	t.Run("operator approves pending reservation", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusPending, domain.PaymentWaiting)}
		svc := newTestService(repo, farBefore)

		resp, err := svc.Transition(context.Background(), 100, operator, &models.TransitionRequest{
			Action:    "approve",
			AdminMemo: ptr.Ptr("입금 확인 완료"),
		})
		require.NoError(t, err)

		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, "completed", resp.PaymentStatus)
		require.NotNil(t, repo.appliedMemo)
		assert.Equal(t, "입금 확인 완료", *repo.appliedMemo)
	})

	t.Run("customer cannot approve", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusPending, domain.PaymentWaiting)}
		svc := newTestService(repo, farBefore)

		_, err := svc.Transition(context.Background(), 100, owner, &models.TransitionRequest{
			Action:    "approve",
			AdminMemo: ptr.Ptr("메모"),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("reject without memo leaves no audit trail and is refused", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusPending, domain.PaymentWaiting)}
		svc := newTestService(repo, farBefore)

		_, err := svc.Transition(context.Background(), 100, operator, &models.TransitionRequest{
			Action: "reject",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, repo.appliedResult)
		assert.Equal(t, domain.StatusPending, repo.reservation.Status)
	})

	t.Run("operator rejects pending reservation with memo", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusPending, domain.PaymentWaiting)}
		svc := newTestService(repo, farBefore)

		resp, err := svc.Transition(context.Background(), 100, operator, &models.TransitionRequest{
			Action:    "reject",
			AdminMemo: ptr.Ptr("사이트 보수 공사"),
		})
		require.NoError(t, err)

		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "refunded", resp.PaymentStatus)
		require.NotNil(t, repo.appliedResult)
		assert.True(t, repo.appliedResult.FreesSlots)
	})

	t.Run("owner cancels before the deadline", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusConfirmed, domain.PaymentCompleted)}
		svc := newTestService(repo, farBefore)

		resp, err := svc.Transition(context.Background(), 100, owner, &models.TransitionRequest{
			Action:             "cancel",
			CancellationReason: ptr.Ptr("개인 사정"),
		})
		require.NoError(t, err)

		assert.Equal(t, "cancelled", resp.Status)
		// Оплата ждёт ручного возврата, mark_refunded - отдельный шаг
		assert.Equal(t, "completed", resp.PaymentStatus)
		require.NotNil(t, repo.appliedReason)
		assert.Equal(t, "개인 사정", *repo.appliedReason)
	})

	t.Run("cancel without reason is refused", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusConfirmed, domain.PaymentCompleted)}
		svc := newTestService(repo, farBefore)

		_, err := svc.Transition(context.Background(), 100, owner, &models.TransitionRequest{
			Action: "cancel",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, repo.appliedResult)
	})

	t.Run("owner cancel past the deadline is refused", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusConfirmed, domain.PaymentCompleted)}
		// 10 часов до начала при дедлайне 24 часа
		svc := newTestService(repo, reservationDate)

		_, err := svc.Transition(context.Background(), 100, owner, &models.TransitionRequest{
			Action:             "cancel",
			CancellationReason: ptr.Ptr("개인 사정"),
		})
		assert.ErrorIs(t, err, ErrCancellationDeadlinePassed)
	})

	t.Run("operator cancels past the deadline", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusConfirmed, domain.PaymentCompleted)}
		svc := newTestService(repo, reservationDate.Add(5*time.Hour))

		resp, err := svc.Transition(context.Background(), 100, operator, &models.TransitionRequest{
			Action:             "cancel",
			CancellationReason: ptr.Ptr("노쇼 처리"),
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusConfirmed, domain.PaymentCompleted)}
		svc := newTestService(repo, farBefore)

		_, err := svc.Transition(context.Background(), 100, stranger, &models.TransitionRequest{
			Action:             "cancel",
			CancellationReason: ptr.Ptr("이유"),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("mark_refunded on cancelled reservation", func(t *testing.T) {
		reservation := testReservation(domain.StatusCancelled, domain.PaymentCompleted)
		repo := &stubReservationRepo{reservation: reservation}
		svc := newTestService(repo, farBefore)

		resp, err := svc.Transition(context.Background(), 100, operator, &models.TransitionRequest{
			Action:    "mark_refunded",
			AdminMemo: ptr.Ptr("계좌 환불 완료"),
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "refunded", resp.PaymentStatus)
	})

	t.Run("approve on confirmed reservation is invalid", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusConfirmed, domain.PaymentCompleted)}
		svc := newTestService(repo, farBefore)

		_, err := svc.Transition(context.Background(), 100, operator, &models.TransitionRequest{
			Action:    "approve",
			AdminMemo: ptr.Ptr("메모"),
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("overlong memo is refused", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusPending, domain.PaymentWaiting)}
		svc := newTestService(repo, farBefore)

		long := make([]byte, domain.MaxAdminMemoLength+1)
		for i := range long {
			long[i] = 'a'
		}

		_, err := svc.Transition(context.Background(), 100, operator, &models.TransitionRequest{
			Action:    "approve",
			AdminMemo: ptr.Ptr(string(long)),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusPending, domain.PaymentWaiting)}
		svc := newTestService(repo, farBefore)

		_, err := svc.Transition(context.Background(), 999, operator, &models.TransitionRequest{
			Action:    "approve",
			AdminMemo: ptr.Ptr("메모"),
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestGetByIDAccess(t *testing.T) {
	now := reservationDate.Add(-72 * time.Hour)

	t.Run("owner and operator can read, stranger cannot", func(t *testing.T) {
		repo := &stubReservationRepo{reservation: testReservation(domain.StatusConfirmed, domain.PaymentCompleted)}
		svc := newTestService(repo, now)

		_, err := svc.GetByID(context.Background(), 100, owner)
		assert.NoError(t, err)

		_, err = svc.GetByID(context.Background(), 100, operator)
		assert.NoError(t, err)

		_, err = svc.GetByID(context.Background(), 100, stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("guest reservation is operator-only", func(t *testing.T) {
		reservation := testReservation(domain.StatusConfirmed, domain.PaymentCompleted)
		reservation.Customer = domain.CustomerInfo{
			GuestName:  ptr.Ptr("홍길동"),
			GuestPhone: ptr.Ptr("010-1234-5678"),
		}
		repo := &stubReservationRepo{reservation: reservation}
		svc := newTestService(repo, now)

		_, err := svc.GetByID(context.Background(), 100, owner)
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = svc.GetByID(context.Background(), 100, operator)
		assert.NoError(t, err)
	})
}

func TestDisplayLabels(t *testing.T) {
	now := reservationDate.Add(-72 * time.Hour)

	t.Run("missing snapshot is resolved from the catalog", func(t *testing.T) {
		reservation := testReservation(domain.StatusConfirmed, domain.PaymentCompleted)
		reservation.TimeSlots = []int64{1, 9}
		reservation.SlotLabels = nil
		repo := &stubReservationRepo{reservation: reservation}
		svc := newTestService(repo, now)

		resp, err := svc.GetByID(context.Background(), 100, owner)
		require.NoError(t, err)
		assert.Equal(t, []string{"1부", "9부 (시간 미정)"}, resp.SlotLabels)
	})

	t.Run("stored snapshot survives catalog renames", func(t *testing.T) {
		reservation := testReservation(domain.StatusConfirmed, domain.PaymentCompleted)
		reservation.SlotLabels = []string{"오전", "오후"}
		repo := &stubReservationRepo{reservation: reservation}
		svc := newTestService(repo, now)

		resp, err := svc.GetByID(context.Background(), 100, owner)
		require.NoError(t, err)
		assert.Equal(t, []string{"오전", "오후"}, resp.SlotLabels)
	})
}

func TestGetFacilityReservationsAccess(t *testing.T) {
	repo := &stubReservationRepo{reservation: testReservation(domain.StatusConfirmed, domain.PaymentCompleted)}
	svc := newTestService(repo, reservationDate.Add(-72*time.Hour))

	req := &models.GetFacilityReservationsRequest{FacilityID: 1}

	_, err := svc.GetFacilityReservations(context.Background(), req, owner)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetFacilityReservations(context.Background(), req, operator)
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}
