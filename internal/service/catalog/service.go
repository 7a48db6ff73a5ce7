package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

// Service сервис каталога временных слотов.
// Каталог маленький и меняется редко, поэтому читается через
// in-process кэш с TTL; обновление каталога сбрасывает кэш
type Service struct {
	slotRepo  TimeSlotRepository
	txManager TransactionManager
	logger    Logger

	cacheTTL time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	cached   []domain.TimeSlot
	cachedAt time.Time
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	slotRepo TimeSlotRepository,
	txManager TransactionManager,
	logger Logger,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// GetAll возвращает каталог слотов, упорядоченный по sort_order
func (s *Service) GetAll(ctx context.Context) ([]domain.TimeSlot, error) {
	if slots, ok := s.fromCache(); ok {
		return slots, nil
	}

	slots, err := s.slotRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	s.storeCache(slots)
	return slots, nil
}

// LabelFor возвращает отображаемую метку слота по id.
// Отсутствие слота в каталоге не ошибка: отображение исторических
// бронирований не должно ломаться из-за смены каталога
func (s *Service) LabelFor(ctx context.Context, slotID int64) string {
	slots, err := s.GetAll(ctx)
	if err != nil {
		s.logger.Warn("LabelFor: falling back for slot id=%d: %v", slotID, err)
		return domain.FallbackSlotLabel(slotID)
	}

	for _, slot := range slots {
		if slot.ID == slotID {
			return slot.Name
		}
	}

	return domain.FallbackSlotLabel(slotID)
}

// Labels возвращает метки для набора слотов, в порядке переданных id
func (s *Service) Labels(ctx context.Context, slotIDs []int64) []string {
	labels := make([]string, 0, len(slotIDs))
	for _, id := range slotIDs {
		labels = append(labels, s.LabelFor(ctx, id))
	}
	return labels
}

// Update атомарно заменяет каталог на новый набор слотов.
// Набор проходит полную валидацию, включая запрет пересекающихся окон
func (s *Service) Update(ctx context.Context, slots []domain.TimeSlot) error {
	if err := domain.ValidateCatalog(slots); err != nil {
		if errors.Is(err, domain.ErrInvalidTimeSlot) || errors.Is(err, domain.ErrOverlappingTimeSlots) {
			s.logger.Warn("Update: catalog validation failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		return fmt.Errorf("%w: Update - validation error: %v", ErrInternal, err)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.slotRepo.ReplaceAll(ctx, slots)
	})
	if err != nil {
		s.logger.Error("Update: failed to replace catalog: %v", err)
		return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidate()
	s.logger.Info("Update: slot catalog replaced, %d slots", len(slots))
	return nil
}

func (s *Service) fromCache() ([]domain.TimeSlot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cached == nil || s.now().Sub(s.cachedAt) > s.cacheTTL {
		return nil, false
	}
	return s.cached, true
}

func (s *Service) storeCache(slots []domain.TimeSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = slots
	s.cachedAt = s.now()
}

func (s *Service) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
}
