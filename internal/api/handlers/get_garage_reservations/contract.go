package get_garage_reservations

import (
	"context"

	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetGarageReservations(ctx context.Context, req *models.GetGarageReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
