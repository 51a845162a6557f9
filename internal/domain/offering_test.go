package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avdeevlv/GMS-ReservationService/pkg/ptr"
)

func validOffering() *GarageServiceOffering {
	return &GarageServiceOffering{
		ID:              1,
		GarageID:        10,
		ServiceID:       20,
		DurationMinutes: 30,
		Capacity:        2,
		PricingType:     PricingFixed,
		Price:           ptr.Ptr(50.0),
		IsAvailable:     true,
	}
}

func TestOffering_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *GarageServiceOffering)
		wantErr error
	}{
		{"valid fixed", func(o *GarageServiceOffering) {}, nil},
		{
			"valid quote",
			func(o *GarageServiceOffering) {
				o.PricingType = PricingQuote
				o.Price = nil
			},
			nil,
		},
		{
			"valid consultation",
			func(o *GarageServiceOffering) {
				o.PricingType = PricingConsultation
				o.Price = nil
			},
			nil,
		},
		{
			"fixed without price",
			func(o *GarageServiceOffering) { o.Price = nil },
			ErrOfferingPriceRequired,
		},
		{
			"fixed with zero price",
			func(o *GarageServiceOffering) { o.Price = ptr.Ptr(0.0) },
			ErrOfferingPriceRequired,
		},
		{
			"quote with price",
			func(o *GarageServiceOffering) {
				o.PricingType = PricingQuote
				o.Price = ptr.Ptr(50.0)
			},
			ErrOfferingPriceForbidden,
		},
		{
			"consultation with price",
			func(o *GarageServiceOffering) {
				o.PricingType = PricingConsultation
				o.Price = ptr.Ptr(50.0)
			},
			ErrOfferingPriceForbidden,
		},
		{
			"unknown pricing type",
			func(o *GarageServiceOffering) { o.PricingType = PricingType("barter") },
			ErrOfferingInvalidPricing,
		},
		{
			"zero capacity",
			func(o *GarageServiceOffering) { o.Capacity = 0 },
			ErrOfferingBadCapacity,
		},
		{
			"zero duration",
			func(o *GarageServiceOffering) { o.DurationMinutes = 0 },
			ErrOfferingBadDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOffering()
			tt.mutate(o)

			err := o.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPricingType_InitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, PricingFixed.InitialStatus())
	assert.Equal(t, StatusPendingQuote, PricingQuote.InitialStatus())
	assert.Equal(t, StatusPendingConsultation, PricingConsultation.InitialStatus())
}

func TestOffering_ReservationEnd(t *testing.T) {
	o := validOffering()
	o.DurationMinutes = 45

	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	end := o.ReservationEnd(start)

	assert.Equal(t, time.Date(2025, 10, 15, 10, 45, 0, 0, time.UTC), end)
}
