package models

import (
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

// Request модели

// UpsertOfferingRequest запрос на создание или обновление конфигурации услуги
type UpsertOfferingRequest struct {
	GarageID    int64    `json:"garageId"`
	ServiceID   int64    `json:"serviceId"`
	Capacity    int      `json:"capacity"`
	PricingType string   `json:"pricingType"`
	Price       *float64 `json:"price,omitempty"`
	IsAvailable bool     `json:"isAvailable"`
	Notes       *string  `json:"notes,omitempty"`
}

// ToDomain конвертирует request в domain модель.
// Название и длительность услуги заполняются сервисом из каталога.
func (r *UpsertOfferingRequest) ToDomain() *domain.GarageServiceOffering {
	return &domain.GarageServiceOffering{
		GarageID:    r.GarageID,
		ServiceID:   r.ServiceID,
		Capacity:    r.Capacity,
		PricingType: domain.PricingType(r.PricingType),
		Price:       r.Price,
		IsAvailable: r.IsAvailable,
		Notes:       r.Notes,
	}
}

// Response модели

// OfferingResponse ответ с данными конфигурации услуги
type OfferingResponse struct {
	ID              int64    `json:"id"`
	GarageID        int64    `json:"garageId"`
	ServiceID       int64    `json:"serviceId"`
	ServiceName     string   `json:"serviceName"`
	DurationMinutes int      `json:"durationMinutes"`
	Capacity        int      `json:"capacity"`
	PricingType     string   `json:"pricingType"`
	Price           *float64 `json:"price,omitempty"`
	IsAvailable     bool     `json:"isAvailable"`
	Notes           *string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OfferingListResponse ответ со списком конфигураций услуг гаража
type OfferingListResponse struct {
	Offerings []OfferingResponse `json:"offerings"`
}

// Методы конвертации

// FromDomainOffering конвертирует domain модель в DTO
func FromDomainOffering(o *domain.GarageServiceOffering) *OfferingResponse {
	if o == nil {
		return nil
	}

	return &OfferingResponse{
		ID:              o.ID,
		GarageID:        o.GarageID,
		ServiceID:       o.ServiceID,
		ServiceName:     o.ServiceName,
		DurationMinutes: o.DurationMinutes,
		Capacity:        o.Capacity,
		PricingType:     string(o.PricingType),
		Price:           o.Price,
		IsAvailable:     o.IsAvailable,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// FromDomainOfferingList конвертирует список domain моделей в DTO
func FromDomainOfferingList(offerings []*domain.GarageServiceOffering) *OfferingListResponse {
	if offerings == nil {
		return &OfferingListResponse{
			Offerings: []OfferingResponse{},
		}
	}

	resp := &OfferingListResponse{
		Offerings: make([]OfferingResponse, len(offerings)),
	}

	for i, offering := range offerings {
		if offeringResp := FromDomainOffering(offering); offeringResp != nil {
			resp.Offerings[i] = *offeringResp
		}
	}

	return resp
}
