package get_pending_quotes

import (
	"context"

	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetPendingQuotes(ctx context.Context, garageID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
