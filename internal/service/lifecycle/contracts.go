package lifecycle

import (
	"context"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	reservationRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/reservation"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Transition(ctx context.Context, id int64, from []domain.ReservationStatus, upd reservationRepo.TransitionUpdate) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, eventName string, payload interface{}) error
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
