package offering

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	"github.com/avdeevlv/GMS-ReservationService/pkg/dbmetrics"
	"github.com/avdeevlv/GMS-ReservationService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

var offeringColumns = []string{
	"gs.id",
	"gs.garage_id",
	"gs.service_id",
	"s.name AS service_name",
	"s.duration_minutes",
	"gs.capacity",
	"gs.pricing_type",
	"gs.price",
	"gs.is_available",
	"gs.notes",
	"gs.created_at",
	"gs.updated_at",
}

// Repository репозиторий конфигураций услуг гаражей.
// Длительность услуги хранится в каталоге services и подтягивается JOIN-ом.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByGarageAndService получает доступную конфигурацию услуги в гараже.
// Недоступные записи (is_available = false) не возвращаются.
func (r *Repository) GetByGarageAndService(ctx context.Context, garageID, serviceID int64) (*domain.GarageServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectOfferings().
		Where(squirrel.Eq{"gs.garage_id": garageID}).
		Where(squirrel.Eq{"gs.service_id": serviceID}).
		Where(squirrel.Eq{"gs.is_available": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByGarageAndService - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	offering, err := scanOffering(row)
	if err == sql.ErrNoRows {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGarageAndService - scan offering: %v", ErrScanRow, err)
	}

	return offering, nil
}

// GetCatalogService получает название и длительность услуги из каталога.
// Нужен управляющим операциям для проверки существования услуги и
// заполнения денормализованных полей.
func (r *Repository) GetCatalogService(ctx context.Context, serviceID int64) (string, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("name", "duration_minutes").
		From("services").
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()

	if err != nil {
		return "", 0, fmt.Errorf("%w: GetCatalogService - build select query: %v", ErrBuildQuery, err)
	}

	var name string
	var duration int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&name, &duration)
	if err == sql.ErrNoRows {
		return "", 0, ErrOfferingNotFound
	}
	if err != nil {
		return "", 0, fmt.Errorf("%w: GetCatalogService - scan service: %v", ErrScanRow, err)
	}

	return name, duration, nil
}

// GetAllByGarage получает все конфигурации услуг гаража, включая недоступные
func (r *Repository) GetAllByGarage(ctx context.Context, garageID int64) ([]*domain.GarageServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectOfferings().
		Where(squirrel.Eq{"gs.garage_id": garageID}).
		OrderBy("gs.service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByGarage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByGarage - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	offerings := make([]*domain.GarageServiceOffering, 0)

	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByGarage - scan row: %v", ErrScanRow, err)
		}
		offerings = append(offerings, offering)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByGarage - rows error: %v", ErrScanRow, err)
	}

	return offerings, nil
}

// Upsert создает или обновляет конфигурацию услуги гаража.
// Пара (garage_id, service_id) уникальна в схеме.
func (r *Repository) Upsert(ctx context.Context, offering *domain.GarageServiceOffering) (*domain.GarageServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("garage_services").
		Columns(
			"garage_id",
			"service_id",
			"capacity",
			"pricing_type",
			"price",
			"is_available",
			"notes",
		).
		Values(
			offering.GarageID,
			offering.ServiceID,
			offering.Capacity,
			offering.PricingType,
			offering.Price,
			offering.IsAvailable,
			offering.Notes,
		).
		Suffix(`ON CONFLICT (garage_id, service_id) DO UPDATE SET
			capacity = EXCLUDED.capacity,
			pricing_type = EXCLUDED.pricing_type,
			price = EXCLUDED.price,
			is_available = EXCLUDED.is_available,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&offering.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	offering.CreatedAt = createdAt.Time
	offering.UpdatedAt = updatedAt.Time

	return offering, nil
}

func (r *Repository) selectOfferings() squirrel.SelectBuilder {
	return psqlbuilder.Select(offeringColumns...).
		From("garage_services gs").
		Join("services s ON s.id = gs.service_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffering(row rowScanner) (*domain.GarageServiceOffering, error) {
	var offering domain.GarageServiceOffering
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&offering.ID,
		&offering.GarageID,
		&offering.ServiceID,
		&offering.ServiceName,
		&offering.DurationMinutes,
		&offering.Capacity,
		&offering.PricingType,
		&offering.Price,
		&offering.IsAvailable,
		&offering.Notes,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	offering.CreatedAt = createdAt.Time
	offering.UpdatedAt = updatedAt.Time

	return &offering, nil
}
