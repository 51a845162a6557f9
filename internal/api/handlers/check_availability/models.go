package check_availability

import (
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/service/availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	GarageID  int64  `json:"garageId"`
	ServiceID int64  `json:"serviceId"`
	TimeSlot  string `json:"timeSlot"` // RFC3339, например "2025-10-15T10:00:00Z"
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available      bool     `json:"available"`
	Capacity       int      `json:"capacity"`
	Booked         int      `json:"booked"`
	RemainingSlots int      `json:"remainingSlots"`
	PricingType    string   `json:"pricingType"`
	Price          *float64 `json:"price,omitempty"`
	TimeSlot       string   `json:"timeSlot"`
	EndTime        string   `json:"endTime"`
}

// FromResult конвертирует результат проверки в HTTP response
func FromResult(result *availability.Result) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		Available:      result.Available,
		Capacity:       result.Capacity,
		Booked:         result.Booked,
		RemainingSlots: result.RemainingSlots,
		PricingType:    string(result.PricingType),
		Price:          result.Price,
		TimeSlot:       result.TimeSlot.Format(time.RFC3339),
		EndTime:        result.EndTime.Format(time.RFC3339),
	}
}
