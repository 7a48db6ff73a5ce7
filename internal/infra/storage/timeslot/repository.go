package timeslot

import (
	"context"
	"fmt"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	"github.com/m04kA/BBQ-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BBQ-ReservationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// Repository хранилище каталога временных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает весь каталог, упорядоченный по sort_order
func (r *Repository) GetAll(ctx context.Context) ([]domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"time_window",
		"sort_order",
	).
		From("time_slots").
		OrderBy("sort_order ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var s domain.TimeSlot
		if err := rows.Scan(&s.ID, &s.Name, &s.Time, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %w", ErrScanRow, err)
	}

	if len(slots) == 0 {
		return nil, ErrEmptyCatalog
	}

	return slots, nil
}

// ReplaceAll атомарно заменяет каталог на новый набор слотов.
// Валидация набора - забота сервисного слоя, здесь только запись.
// Вызывать строго внутри транзакции (txmanager.Do)
func (r *Repository) ReplaceAll(ctx context.Context, slots []domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("time_slots").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - delete old catalog: %w", ErrExecQuery, err)
	}

	insert := psqlbuilder.Insert("time_slots").
		Columns("id", "name", "time_window", "sort_order")

	for _, s := range slots {
		insert = insert.Values(s.ID, s.Name, s.Time, s.SortOrder)
	}

	insertQuery, insertArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - insert new catalog: %w", ErrExecQuery, err)
	}

	return nil
}
