package cancel_reservation

import (
	"context"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

type LifecycleService interface {
	Cancel(ctx context.Context, reservationID int64, reason *string) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
