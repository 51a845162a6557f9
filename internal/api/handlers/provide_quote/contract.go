package provide_quote

import (
	"context"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

type LifecycleService interface {
	ProvideQuote(ctx context.Context, reservationID int64, price float64, garageNotes *string) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
