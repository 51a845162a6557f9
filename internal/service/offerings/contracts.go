package offerings

import (
	"context"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

// OfferingRepository интерфейс репозитория конфигураций услуг
type OfferingRepository interface {
	GetAllByGarage(ctx context.Context, garageID int64) ([]*domain.GarageServiceOffering, error)
	GetCatalogService(ctx context.Context, serviceID int64) (name string, durationMinutes int, err error)
	Upsert(ctx context.Context, offering *domain.GarageServiceOffering) (*domain.GarageServiceOffering, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
