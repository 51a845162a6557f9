package domain

import (
	"errors"
	"fmt"
	"time"
)

// PricingType способ ценообразования услуги в гараже
type PricingType string

const (
	// PricingFixed цена известна заранее и фиксируется при создании брони
	PricingFixed PricingType = "fixed"
	// PricingQuote гараж выставляет смету после получения заявки
	PricingQuote PricingType = "quote"
	// PricingConsultation цена определяется на консультации (внешний процесс)
	PricingConsultation PricingType = "consultation"
)

// IsValid возвращает true для известного способа ценообразования
func (p PricingType) IsValid() bool {
	switch p {
	case PricingFixed, PricingQuote, PricingConsultation:
		return true
	default:
		return false
	}
}

// InitialStatus возвращает начальный статус брони для способа ценообразования
func (p PricingType) InitialStatus() ReservationStatus {
	switch p {
	case PricingQuote:
		return StatusPendingQuote
	case PricingConsultation:
		return StatusPendingConsultation
	default:
		return StatusPending
	}
}

// Ошибки валидации конфигурации услуги
var (
	ErrOfferingPriceRequired  = errors.New("domain: fixed pricing requires a positive price")
	ErrOfferingPriceForbidden = errors.New("domain: price must be empty for quote and consultation pricing")
	ErrOfferingInvalidPricing = errors.New("domain: unknown pricing type")
	ErrOfferingBadCapacity    = errors.New("domain: capacity must be at least 1")
	ErrOfferingBadDuration    = errors.New("domain: duration must be at least 1 minute")
)

// GarageServiceOffering конфигурация услуги каталога в конкретном гараже.
// Создается и изменяется владельцем гаража; ядро бронирования читает её
// при проверке доступности.
type GarageServiceOffering struct {
	ID        int64
	GarageID  int64
	ServiceID int64

	// ServiceName название услуги из каталога (денормализовано)
	ServiceName string

	// DurationMinutes длительность услуги; вместе со слотом образует интервал
	DurationMinutes int

	// Capacity максимум одновременно пересекающихся броней
	Capacity int

	PricingType PricingType

	// Price обязана присутствовать при fixed и отсутствовать при quote/consultation
	Price *float64

	IsAvailable bool
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет инварианты конфигурации услуги.
// Нарушение - ошибка конфигурирования, а не бронирования: ядро относится
// к невалидной записи как к отсутствующей услуге.
func (o *GarageServiceOffering) Validate() error {
	if !o.PricingType.IsValid() {
		return fmt.Errorf("%w: %q", ErrOfferingInvalidPricing, o.PricingType)
	}

	switch o.PricingType {
	case PricingFixed:
		if o.Price == nil || *o.Price <= 0 {
			return ErrOfferingPriceRequired
		}
	case PricingQuote, PricingConsultation:
		if o.Price != nil {
			return ErrOfferingPriceForbidden
		}
	}

	if o.Capacity < 1 {
		return ErrOfferingBadCapacity
	}

	if o.DurationMinutes < 1 {
		return ErrOfferingBadDuration
	}

	return nil
}

// ReservationEnd вычисляет конец интервала брони для заданного начала слота
func (o *GarageServiceOffering) ReservationEnd(timeSlot time.Time) time.Time {
	return timeSlot.Add(time.Duration(o.DurationMinutes) * time.Minute)
}
