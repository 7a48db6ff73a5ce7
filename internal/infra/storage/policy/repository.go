package policy

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	"github.com/m04kA/BBQ-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BBQ-ReservationService/pkg/psqlbuilder"
)

// Ключи настроек политики бронирования в store_settings
const (
	keyMaxAdvanceBookingDays     = "max_advance_booking_days"
	keyMinAdvanceBookingHours    = "min_advance_booking_hours"
	keyCancellationDeadlineHours = "cancellation_deadline_hours"
	keyPenaltyThresholdHours     = "penalty_threshold_hours"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// Repository читает политику бронирования из key/value таблицы store_settings
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStorePolicy собирает политику из store_settings.
// Отсутствующие или некорректные значения заменяются дефолтами:
// политика всегда полная, частичная конфигурация не блокирует бронирование
func (r *Repository) GetStorePolicy(ctx context.Context) (domain.StorePolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("setting_key", "setting_value").
		From("store_settings").
		Where(squirrel.Eq{"setting_key": []string{
			keyMaxAdvanceBookingDays,
			keyMinAdvanceBookingHours,
			keyCancellationDeadlineHours,
			keyPenaltyThresholdHours,
		}}).
		ToSql()

	if err != nil {
		return domain.StorePolicy{}, fmt.Errorf("%w: GetStorePolicy - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.StorePolicy{}, fmt.Errorf("%w: GetStorePolicy - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.StorePolicy{}, fmt.Errorf("%w: GetStorePolicy - scan row: %w", ErrScanRow, err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return domain.StorePolicy{}, fmt.Errorf("%w: GetStorePolicy - rows error: %w", ErrScanRow, err)
	}

	policy := domain.DefaultStorePolicy()
	policy.MaxAdvanceBookingDays = intSetting(values, keyMaxAdvanceBookingDays, policy.MaxAdvanceBookingDays)
	policy.MinAdvanceBookingHours = intSetting(values, keyMinAdvanceBookingHours, policy.MinAdvanceBookingHours)
	policy.CancellationDeadlineHours = intSetting(values, keyCancellationDeadlineHours, policy.CancellationDeadlineHours)
	policy.PenaltyThresholdHours = intSetting(values, keyPenaltyThresholdHours, policy.PenaltyThresholdHours)

	return policy, nil
}

func intSetting(values map[string]string, key string, fallback int) int {
	raw, ok := values[key]
	if !ok {
		return fallback
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}

	return parsed
}
