package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	"github.com/m04kA/BBQ-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BBQ-ReservationService/pkg/psqlbuilder"
)

// uniqueViolation код PostgreSQL для нарушения unique constraint
const uniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"facility_id",
	"site_id",
	"reservation_date",
	"time_slots",
	"slot_labels",
	"total_amount",
	"status",
	"payment_status",
	"user_id",
	"guest_name",
	"guest_phone",
	"guest_email",
	"special_requests",
	"admin_memo",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со строками удержания слотов
// в reservation_slots. Уникальный индекс (site_id, reservation_date,
// slot_id) на reservation_slots - страховка на уровне хранилища: две
// конкурентные вставки на один слот не могут пройти обе, даже если
// блокировка чтения была обойдена. Нарушение уникальности возвращается
// как ErrSlotTaken.
//
// Вызывать внутри сериализуемой транзакции (контекст от txmanager):
// проверка доступности и вставка должны быть одной атомарной операцией.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"facility_id",
			"site_id",
			"reservation_date",
			"time_slots",
			"slot_labels",
			"total_amount",
			"status",
			"payment_status",
			"user_id",
			"guest_name",
			"guest_phone",
			"guest_email",
			"special_requests",
		).
		Values(
			res.FacilityID,
			res.SiteID,
			res.ReservationDate,
			pq.Int64Array(res.TimeSlots),
			pq.StringArray(res.SlotLabels),
			res.TotalAmount,
			res.Status,
			res.PaymentStatus,
			res.Customer.UserID,
			res.Customer.GuestName,
			res.Customer.GuestPhone,
			res.Customer.GuestEmail,
			res.SpecialRequests,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	// Вставляем строки удержания слотов
	if err := r.holdSlots(ctx, executor, res); err != nil {
		return nil, err
	}

	return res, nil
}

// holdSlots вставляет по строке на каждый удерживаемый слот
func (r *Repository) holdSlots(ctx context.Context, executor DBExecutor, res *domain.Reservation) error {
	insertBuilder := psqlbuilder.Insert("reservation_slots").
		Columns("site_id", "reservation_date", "slot_id", "reservation_id")

	for _, slotID := range res.TimeSlots {
		insertBuilder = insertBuilder.Values(res.SiteID, res.ReservationDate, slotID, res.ID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: holdSlots - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: holdSlots - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reservation_date DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetActiveBySiteAndDate получает все активные (pending/confirmed)
// бронирования места на дату. Внутри транзакции добавляет FOR UPDATE -
// конкурентные reserve-операции на один (site, date) сериализуются на
// этих строках
func (r *Repository) GetActiveBySiteAndDate(ctx context.Context, siteID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"site_id": siteID}).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySiteAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySiteAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetActiveByFacilityAndDate получает все активные бронирования объекта на
// дату (для построения матрицы доступности по всем местам)
func (r *Repository) GetActiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("site_id ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByFacilityAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByFacilityAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByFacilityWithFilter получает бронирования объекта с фильтрацией
// по месту, периоду и статусу (для операторского списка)
func (r *Repository) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"facility_id": filter.FacilityID})

	if filter.SiteID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"site_id": *filter.SiteID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("reservation_date DESC, id DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ApplyTransition применяет результат перехода статуса к строке
// бронирования: статусы, аудиторская запись, updated_at; для отмены -
// cancelled_at и освобождение строк удержания слотов
func (r *Repository) ApplyTransition(
	ctx context.Context,
	id int64,
	result domain.TransitionResult,
	adminMemo *string,
	cancellationReason *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", result.Status).
		Set("payment_status", result.PaymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if adminMemo != nil {
		updateBuilder = updateBuilder.Set("admin_memo", *adminMemo)
	}
	if cancellationReason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *cancellationReason)
	}
	if result.StampCancelledAt {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ApplyTransition - build update query: %w", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ApplyTransition - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ApplyTransition - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	// Отмена освобождает слоты в той же операции
	if result.FreesSlots {
		if err := r.releaseSlots(ctx, executor, id); err != nil {
			return err
		}
	}

	return nil
}

// releaseSlots удаляет строки удержания слотов бронирования
func (r *Repository) releaseSlots(ctx context.Context, executor DBExecutor, reservationID int64) error {
	query, args, err := psqlbuilder.Delete("reservation_slots").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: releaseSlots - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: releaseSlots - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в модель бронирования
func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var timeSlots pq.Int64Array
	var slotLabels pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.FacilityID,
		&res.SiteID,
		&res.ReservationDate,
		&timeSlots,
		&slotLabels,
		&res.TotalAmount,
		&res.Status,
		&res.PaymentStatus,
		&res.Customer.UserID,
		&res.Customer.GuestName,
		&res.Customer.GuestPhone,
		&res.Customer.GuestEmail,
		&res.SpecialRequests,
		&res.AdminMemo,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	res.TimeSlots = []int64(timeSlots)
	res.SlotLabels = []string(slotLabels)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
