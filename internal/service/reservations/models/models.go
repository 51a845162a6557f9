package models

import (
	"errors"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на получение броней пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetGarageReservationsRequest запрос на получение броней гаража
type GetGarageReservationsRequest struct {
	GarageID  int64      `json:"garageId"`
	UserID    *int64     `json:"userId,omitempty"`    // Фильтр по клиенту (опционально)
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetGarageReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		GarageID:  r.GarageID,
		UserID:    r.UserID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	GarageID  int64  `json:"garageId"`
	ServiceID int64  `json:"serviceId"`
	TimeSlot  string `json:"timeSlot"` // ISO 8601 format
	EndTime   string `json:"endTime"`  // ISO 8601 format
	Status    string `json:"status"`

	Price *float64 `json:"price,omitempty"`

	ClientNotes        *string `json:"clientNotes,omitempty"`
	GarageNotes        *string `json:"garageNotes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"` // ISO 8601 format
	CompletedAt *string `json:"completedAt,omitempty"` // ISO 8601 format
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	// Денормализованные данные
	GarageName  string `json:"garageName"`
	ServiceName string `json:"serviceName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		GarageID:           r.GarageID,
		ServiceID:          r.ServiceID,
		TimeSlot:           r.TimeSlot.Format(time.RFC3339),
		EndTime:            r.EndTime.Format(time.RFC3339),
		Status:             string(r.Status),
		Price:              r.Price,
		ClientNotes:        r.ClientNotes,
		GarageNotes:        r.GarageNotes,
		CancellationReason: r.CancellationReason,
		GarageName:         r.GarageName,
		ServiceName:        r.ServiceName,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	resp.ConfirmedAt = formatTimestamp(r.ConfirmedAt)
	resp.CompletedAt = formatTimestamp(r.CompletedAt)
	resp.CancelledAt = formatTimestamp(r.CancelledAt)

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if reservationResp := FromDomainReservation(reservation); reservationResp != nil {
			resp.Reservations[i] = *reservationResp
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
