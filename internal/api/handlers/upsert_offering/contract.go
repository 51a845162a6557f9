package upsert_offering

import (
	"context"

	"github.com/avdeevlv/GMS-ReservationService/internal/service/offerings/models"
)

type OfferingService interface {
	Upsert(ctx context.Context, req *models.UpsertOfferingRequest) (*models.OfferingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
