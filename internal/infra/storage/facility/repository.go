package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/BBQ-ReservationService/internal/domain"
	"github.com/m04kA/BBQ-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BBQ-ReservationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// Repository read-model для объектов и мест
// Редактирование объектов - забота админского CRUD-слоя вне ядра;
// ядру нужны только строки для проверок и расчета цены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetFacility получает активный объект по ID
func (r *Repository) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"type",
		"capacity",
		"weekday_price",
		"weekend_price",
		"amenities",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFacility - build select query: %w", ErrBuildQuery, err)
	}

	var f domain.Facility
	var amenities pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&f.ID,
		&f.Name,
		&f.Type,
		&f.Capacity,
		&f.WeekdayPrice,
		&f.WeekendPrice,
		&amenities,
		&f.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFacility - scan facility: %w", ErrScanRow, err)
	}

	f.Amenities = []string(amenities)
	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}

// GetSite получает активное место по ID
func (r *Repository) GetSite(ctx context.Context, id int64) (*domain.Site, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := siteSelect().
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSite - build select query: %w", ErrBuildQuery, err)
	}

	site, err := scanSite(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSite - scan site: %w", ErrScanRow, err)
	}

	return site, nil
}

// GetSitesByFacility получает все активные места объекта
func (r *Repository) GetSitesByFacility(ctx context.Context, facilityID int64) ([]*domain.Site, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := siteSelect().
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("site_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSitesByFacility - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSitesByFacility - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	sites := make([]*domain.Site, 0)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSitesByFacility - scan row: %w", ErrScanRow, err)
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSitesByFacility - rows error: %w", ErrScanRow, err)
	}

	return sites, nil
}

func siteSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"facility_id",
		"site_number",
		"name",
		"capacity",
		"is_active",
		"created_at",
		"updated_at",
	).From("sites")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSite(row rowScanner) (*domain.Site, error) {
	var s domain.Site
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.FacilityID,
		&s.SiteNumber,
		&s.Name,
		&s.Capacity,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
