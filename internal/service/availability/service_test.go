package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	offeringRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/offering"
	"github.com/avdeevlv/GMS-ReservationService/pkg/ptr"
)

// Mock repositories

type MockOfferingRepository struct {
	mock.Mock
}

func (m *MockOfferingRepository) GetByGarageAndService(ctx context.Context, garageID, serviceID int64) (*domain.GarageServiceOffering, error) {
	args := m.Called(ctx, garageID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GarageServiceOffering), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) CountOverlapping(
	ctx context.Context,
	garageID, serviceID int64,
	start, end time.Time,
	statuses []domain.ReservationStatus,
	excludeID *int64,
) (int, error) {
	args := m.Called(ctx, garageID, serviceID, start, end, statuses, excludeID)
	return args.Int(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func fixedOffering() *domain.GarageServiceOffering {
	return &domain.GarageServiceOffering{
		ID:              1,
		GarageID:        10,
		ServiceID:       20,
		DurationMinutes: 30,
		Capacity:        2,
		PricingType:     domain.PricingFixed,
		Price:           ptr.Ptr(40.0),
		IsAvailable:     true,
	}
}

func TestCheck_SlotAvailable(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	slot := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	end := slot.Add(30 * time.Minute)

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(fixedOffering(), nil)
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20), slot, end,
		domain.CapacityStatuses, (*int64)(nil)).
		Return(1, nil)

	result, err := svc.Check(context.Background(), 10, 20, slot)

	assert.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, 2, result.Capacity)
	assert.Equal(t, 1, result.Booked)
	assert.Equal(t, 1, result.RemainingSlots)
	assert.Equal(t, domain.PricingFixed, result.PricingType)
	assert.Equal(t, 40.0, *result.Price)
	assert.Equal(t, slot, result.TimeSlot)
	assert.Equal(t, end, result.EndTime)
	reservationsRepo.AssertExpectations(t)
}

func TestCheck_SlotFull(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	slot := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(fixedOffering(), nil)
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20),
		mock.Anything, mock.Anything, domain.CapacityStatuses, (*int64)(nil)).
		Return(2, nil)

	result, err := svc.Check(context.Background(), 10, 20, slot)

	assert.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 0, result.RemainingSlots)
}

func TestCheck_OverbookedClampedToZero(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(fixedOffering(), nil)
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20),
		mock.Anything, mock.Anything, domain.CapacityStatuses, (*int64)(nil)).
		Return(5, nil)

	result, err := svc.Check(context.Background(), 10, 20, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 0, result.RemainingSlots)
}

func TestCheck_IntervalUsesServiceDuration(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	offering := fixedOffering()
	offering.DurationMinutes = 90
	slot := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(offering, nil)
	// Конец интервала обязан быть slot + длительность услуги, а не фиксированный шаг
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20),
		slot, slot.Add(90*time.Minute), domain.CapacityStatuses, (*int64)(nil)).
		Return(0, nil)

	result, err := svc.Check(context.Background(), 10, 20, slot)

	assert.NoError(t, err)
	assert.Equal(t, slot.Add(90*time.Minute), result.EndTime)
	reservationsRepo.AssertExpectations(t)
}

func TestCheck_OfferingNotFound(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(nil, offeringRepo.ErrOfferingNotFound)

	_, err := svc.Check(context.Background(), 10, 20, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, ErrOfferingNotFound)
}

func TestCheck_MisconfiguredOfferingTreatedAsMissing(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	offering := fixedOffering()
	offering.Price = nil // fixed без цены - невалидная конфигурация

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(offering, nil)

	_, err := svc.Check(context.Background(), 10, 20, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, ErrOfferingNotFound)
	reservationsRepo.AssertNotCalled(t, "CountOverlapping")
}

func TestCheck_InvalidInput(t *testing.T) {
	svc := NewService(new(MockOfferingRepository), new(MockReservationRepository), nopLogger{})

	_, err := svc.Check(context.Background(), 0, 20, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Check(context.Background(), 10, -1, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Check(context.Background(), 10, 20, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheck_Idempotent(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	slot := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(fixedOffering(), nil)
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20),
		mock.Anything, mock.Anything, domain.CapacityStatuses, (*int64)(nil)).
		Return(1, nil)

	first, err := svc.Check(context.Background(), 10, 20, slot)
	assert.NoError(t, err)

	second, err := svc.Check(context.Background(), 10, 20, slot)
	assert.NoError(t, err)

	// Проверка не имеет побочных эффектов: повтор дает тот же результат
	assert.Equal(t, first, second)
}

func TestDaySlots_FullBusinessWindow(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(fixedOffering(), nil)
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20),
		mock.Anything, mock.Anything, domain.CapacityStatuses, (*int64)(nil)).
		Return(0, nil)

	slots, err := svc.DaySlots(context.Background(), 10, 20, date)

	assert.NoError(t, err)
	// 08:00-18:00 с шагом 30 минут = 20 кандидатов
	assert.Len(t, slots, 20)
	assert.Equal(t, time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC), slots[0].TimeSlot)
	assert.Equal(t, time.Date(2025, 10, 15, 17, 30, 0, 0, time.UTC), slots[len(slots)-1].TimeSlot)

	// Хронологический порядок
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].TimeSlot.After(slots[i-1].TimeSlot))
	}

	for _, slot := range slots {
		assert.True(t, slot.Available)
		assert.Equal(t, 2, slot.RemainingSlots)
	}
}

func TestDaySlots_FailingSlotOmitted(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	failing := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(fixedOffering(), nil)
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20),
		failing, mock.Anything, domain.CapacityStatuses, (*int64)(nil)).
		Return(0, errors.New("connection reset"))
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20),
		mock.Anything, mock.Anything, domain.CapacityStatuses, (*int64)(nil)).
		Return(0, nil)

	slots, err := svc.DaySlots(context.Background(), 10, 20, date)

	assert.NoError(t, err)
	// Сбойный слот молча пропущен, остальные на месте
	assert.Len(t, slots, 19)
	for _, slot := range slots {
		assert.NotEqual(t, failing, slot.TimeSlot)
	}
}

func TestDaySlots_UnconfiguredServiceYieldsEmptyDay(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(nil, offeringRepo.ErrOfferingNotFound)

	slots, err := svc.DaySlots(context.Background(), 10, 20, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Empty(t, slots)
	reservationsRepo.AssertNotCalled(t, "CountOverlapping")
}

func TestDaySlots_PartiallyBookedDay(t *testing.T) {
	offerings := new(MockOfferingRepository)
	reservationsRepo := new(MockReservationRepository)
	svc := NewService(offerings, reservationsRepo, nopLogger{})

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	busy := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	offerings.On("GetByGarageAndService", mock.Anything, int64(10), int64(20)).
		Return(fixedOffering(), nil)
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20),
		busy, mock.Anything, domain.CapacityStatuses, (*int64)(nil)).
		Return(2, nil)
	reservationsRepo.On("CountOverlapping", mock.Anything, int64(10), int64(20),
		mock.Anything, mock.Anything, domain.CapacityStatuses, (*int64)(nil)).
		Return(0, nil)

	slots, err := svc.DaySlots(context.Background(), 10, 20, date)

	assert.NoError(t, err)
	assert.Len(t, slots, 20)

	for _, slot := range slots {
		if slot.TimeSlot.Equal(busy) {
			assert.False(t, slot.Available)
			assert.Equal(t, 0, slot.RemainingSlots)
		} else {
			assert.True(t, slot.Available)
		}
	}
}
