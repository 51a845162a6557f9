package create_reservation

import (
	"fmt"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.GarageID <= 0 {
		return fmt.Errorf("%w: garageID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.TimeSlot.IsZero() {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	if req.ClientNotes != nil && len(*req.ClientNotes) > domain.MaxClientNotesLength {
		return fmt.Errorf("%w: clientNotes must not exceed %d characters", ErrInvalidInput, domain.MaxClientNotesLength)
	}

	return nil
}

// validateTimeSlot проверяет, что слот не в прошлом
func validateTimeSlot(timeSlot, now time.Time) error {
	if !timeSlot.After(now) {
		return ErrInvalidTimeSlot
	}
	return nil
}
