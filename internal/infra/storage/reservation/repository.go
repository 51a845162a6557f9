package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	"github.com/avdeevlv/GMS-ReservationService/pkg/dbmetrics"
	"github.com/avdeevlv/GMS-ReservationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов.
// Поддерживает *sql.DB, *sql.Tx и их обёртки с метриками.
type DBExecutor = dbmetrics.DBExecutor

// reservationColumns колонки брони вместе с денормализованными названиями
// гаража и услуги. Подписчикам событий нужна заполненная запись, поэтому
// выборки всегда идут с JOIN.
var reservationColumns = []string{
	"r.id",
	"r.user_id",
	"r.garage_id",
	"r.service_id",
	"r.time_slot",
	"r.end_time",
	"r.status",
	"r.price",
	"r.client_notes",
	"r.garage_notes",
	"r.cancellation_reason",
	"r.confirmed_at",
	"r.completed_at",
	"r.cancelled_at",
	"g.name AS garage_name",
	"s.name AS service_name",
	"r.created_at",
	"r.updated_at",
}

// TransitionUpdate набор полей, записываемых вместе со сменой статуса.
// nil-поля не изменяются.
type TransitionUpdate struct {
	Status             domain.ReservationStatus
	Price              *float64
	GarageNotes        *string
	CancellationReason *string
	ConfirmedAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
}

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь.
// Если в контексте передана активная транзакция (через context.Value),
// использует её - так проверка доступности и вставка видят один снимок данных.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"garage_id",
			"service_id",
			"time_slot",
			"end_time",
			"status",
			"price",
			"client_notes",
		).
		Values(
			reservation.UserID,
			reservation.GarageID,
			reservation.ServiceID,
			reservation.TimeSlot,
			reservation.EndTime,
			reservation.Status,
			reservation.Price,
			reservation.ClientNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронь по ID вместе с названиями гаража и услуги
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectReservations().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	reservation, err := scanReservationRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// CountOverlapping подсчитывает брони гаража и услуги, чьи интервалы
// пересекают [start, end) и чей статус входит в statuses.
// Пересечение полуоткрытых интервалов: existing.time_slot < end
// AND existing.end_time > start - брони впритык не конфликтуют.
func (r *Repository) CountOverlapping(
	ctx context.Context,
	garageID, serviceID int64,
	start, end time.Time,
	statuses []domain.ReservationStatus,
	excludeID *int64,
) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"garage_id": garageID}).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"status": statusStrings}).
		Where(squirrel.Lt{"time_slot": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByUserID получает брони пользователя, опционально фильтруя по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectReservations().
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.time_slot DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetUpcomingByUser получает предстоящие активные брони пользователя,
// отсортированные по времени начала
func (r *Repository) GetUpcomingByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectReservations().
		Where(squirrel.Eq{"r.user_id": userID}).
		Where(squirrel.Gt{"r.time_slot": now}).
		Where(squirrel.NotEq{"r.status": []string{
			string(domain.StatusCompleted),
			string(domain.StatusCancelled),
		}}).
		OrderBy("r.time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByGarageWithFilter получает брони гаража с гибкой фильтрацией
// по клиенту, периоду и статусу
func (r *Repository) GetByGarageWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectReservations().
		Where(squirrel.Eq{"r.garage_id": filter.GarageID})

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"r.time_slot": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"r.time_slot": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *filter.Status})
	}

	query, args, err := selectBuilder.
		OrderBy("r.time_slot DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByGarageWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGarageWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetPendingQuotes получает заявки гаража, ожидающие выставления сметы,
// в порядке поступления
func (r *Repository) GetPendingQuotes(ctx context.Context, garageID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectReservations().
		Where(squirrel.Eq{"r.garage_id": garageID}).
		Where(squirrel.Eq{"r.status": domain.StatusPendingQuote}).
		OrderBy("r.created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingQuotes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingQuotes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Transition применяет смену статуса условным обновлением: строка меняется
// только если текущий статус входит в from. Ноль затронутых строк означает,
// что бронь отсутствует или конкурентный переход успел раньше - возвращается
// ErrStaleStatus, вызывающая сторона перечитывает бронь и решает сама.
func (r *Repository) Transition(ctx context.Context, id int64, from []domain.ReservationStatus, upd TransitionUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", upd.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": fromStrings})

	if upd.Price != nil {
		updateBuilder = updateBuilder.Set("price", *upd.Price)
	}
	if upd.GarageNotes != nil {
		updateBuilder = updateBuilder.Set("garage_notes", *upd.GarageNotes)
	}
	if upd.CancellationReason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *upd.CancellationReason)
	}
	if upd.ConfirmedAt != nil {
		updateBuilder = updateBuilder.Set("confirmed_at", *upd.ConfirmedAt)
	}
	if upd.CompletedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *upd.CompletedAt)
	}
	if upd.CancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *upd.CancelledAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Transition - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Transition - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

// selectReservations базовая выборка брони с JOIN на гаражи и услуги
func (r *Repository) selectReservations() squirrel.SelectBuilder {
	return psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("garages g ON g.id = r.garage_id").
		Join("services s ON s.id = r.service_id")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.GarageID,
		&reservation.ServiceID,
		&reservation.TimeSlot,
		&reservation.EndTime,
		&reservation.Status,
		&reservation.Price,
		&reservation.ClientNotes,
		&reservation.GarageNotes,
		&reservation.CancellationReason,
		&reservation.ConfirmedAt,
		&reservation.CompletedAt,
		&reservation.CancelledAt,
		&reservation.GarageName,
		&reservation.ServiceName,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func scanReservationRow(row *sql.Row) (*domain.Reservation, error) {
	return scanReservation(row)
}

// scanReservations сканирует результаты запроса в слайс броней
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
