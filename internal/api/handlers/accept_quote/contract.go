package accept_quote

import (
	"context"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

type LifecycleService interface {
	AcceptQuote(ctx context.Context, reservationID, userID int64) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
