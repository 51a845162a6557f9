package availability

import (
	"context"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

// OfferingRepository интерфейс репозитория конфигураций услуг
type OfferingRepository interface {
	GetByGarageAndService(ctx context.Context, garageID, serviceID int64) (*domain.GarageServiceOffering, error)
}

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	CountOverlapping(
		ctx context.Context,
		garageID, serviceID int64,
		start, end time.Time,
		statuses []domain.ReservationStatus,
		excludeID *int64,
	) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
