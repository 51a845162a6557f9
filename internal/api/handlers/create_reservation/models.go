package create_reservation

import (
	"time"

	createReservation "github.com/avdeevlv/GMS-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	GarageID    int64   `json:"garageId"`
	ServiceID   int64   `json:"serviceId"`
	TimeSlot    string  `json:"timeSlot"` // RFC3339
	ClientNotes *string `json:"clientNotes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64    `json:"id"`
	UserID         int64    `json:"userId"`
	GarageID       int64    `json:"garageId"`
	ServiceID      int64    `json:"serviceId"`
	TimeSlot       string   `json:"timeSlot"`
	EndTime        string   `json:"endTime"`
	Status         string   `json:"status"`
	Price          *float64 `json:"price,omitempty"`
	ClientNotes    *string  `json:"clientNotes,omitempty"`
	GarageName     string   `json:"garageName"`
	ServiceName    string   `json:"serviceName"`
	RemainingSlots int      `json:"remainingSlots"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	timeSlot, err := time.Parse(time.RFC3339, r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:      userID,
		GarageID:    r.GarageID,
		ServiceID:   r.ServiceID,
		TimeSlot:    timeSlot,
		ClientNotes: r.ClientNotes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		GarageID:       resp.GarageID,
		ServiceID:      resp.ServiceID,
		TimeSlot:       resp.TimeSlot.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		Status:         resp.Status,
		Price:          resp.Price,
		ClientNotes:    resp.ClientNotes,
		GarageName:     resp.GarageName,
		ServiceName:    resp.ServiceName,
		RemainingSlots: resp.RemainingSlots,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
