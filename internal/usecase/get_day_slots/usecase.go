package get_day_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

// UseCase use case для перечисления слотов дня
type UseCase struct {
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilitySvc AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availabilitySvc,
		logger:       logger,
	}
}

// Execute выполняет use case перечисления слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: garage=%d, service=%d, date=%s",
		req.GarageID, req.ServiceID, req.Date.Format(domain.DateFormat))

	if req.GarageID <= 0 {
		return nil, fmt.Errorf("%w: garageID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	slots, err := uc.availability.DaySlots(ctx, req.GarageID, req.ServiceID, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to enumerate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to enumerate slots: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:  req.Date.Format(domain.DateFormat),
		Slots: make([]Slot, len(slots)),
	}
	for i, slot := range slots {
		resp.Slots[i] = Slot{
			TimeSlot:       slot.TimeSlot.Format(time.RFC3339),
			Available:      slot.Available,
			RemainingSlots: slot.RemainingSlots,
		}
	}

	uc.logger.Info("GetDaySlots: returning %d slots for garage=%d service=%d", len(resp.Slots), req.GarageID, req.ServiceID)
	return resp, nil
}
