package get_day_slots

import (
	"context"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

// AvailabilityService интерфейс движка доступности
type AvailabilityService interface {
	DaySlots(ctx context.Context, garageID, serviceID int64, date time.Time) ([]domain.DaySlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
