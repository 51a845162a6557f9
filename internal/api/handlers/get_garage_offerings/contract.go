package get_garage_offerings

import (
	"context"

	"github.com/avdeevlv/GMS-ReservationService/internal/service/offerings/models"
)

type OfferingService interface {
	GetAllByGarage(ctx context.Context, garageID int64) (*models.OfferingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
