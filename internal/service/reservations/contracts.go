package reservations

import (
	"context"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetUpcomingByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Reservation, error)
	GetByGarageWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	GetPendingQuotes(ctx context.Context, garageID int64) ([]*domain.Reservation, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
