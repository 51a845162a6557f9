package check_availability

import (
	"context"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/service/availability"
)

type AvailabilityService interface {
	Check(ctx context.Context, garageID, serviceID int64, timeSlot time.Time) (*availability.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
