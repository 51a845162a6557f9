package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	offeringRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/offering"
)

// Service отвечает на вопрос "примет ли гараж ещё одну бронь на этот слот".
// Сервис без состояния: вся изменяемая информация живёт в хранилище,
// результат детерминирован для снимка броней на момент вызова.
type Service struct {
	offeringRepo    OfferingRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	offeringRepo OfferingRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *Service {
	return &Service{
		offeringRepo:    offeringRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Check проверяет доступность слота для услуги в гараже.
// Интервал брони [timeSlot, timeSlot+длительность) сравнивается с активными
// бронями по правилу полуоткрытых интервалов: брони впритык не конфликтуют.
// Только чтение, без побочных эффектов.
func (s *Service) Check(ctx context.Context, garageID, serviceID int64, timeSlot time.Time) (*Result, error) {
	if garageID <= 0 || serviceID <= 0 {
		return nil, fmt.Errorf("%w: garageID and serviceID must be positive", ErrInvalidInput)
	}
	if timeSlot.IsZero() {
		return nil, fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	offering, err := s.offeringRepo.GetByGarageAndService(ctx, garageID, serviceID)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrOfferingNotFound) {
			return nil, ErrOfferingNotFound
		}
		s.logger.Error("Check: failed to get offering garage=%d service=%d: %v", garageID, serviceID, err)
		return nil, fmt.Errorf("%w: failed to get offering: %v", ErrInternal, err)
	}

	// Невалидная конфигурация (например, fixed без цены) - ошибка
	// конфигурирования гаража; для бронирования услуга просто недоступна
	if err := offering.Validate(); err != nil {
		s.logger.Warn("Check: offering garage=%d service=%d is misconfigured: %v", garageID, serviceID, err)
		return nil, ErrOfferingNotFound
	}

	endTime := offering.ReservationEnd(timeSlot)

	booked, err := s.reservationRepo.CountOverlapping(
		ctx,
		garageID,
		serviceID,
		timeSlot,
		endTime,
		domain.CapacityStatuses,
		nil,
	)
	if err != nil {
		s.logger.Error("Check: failed to count overlapping reservations garage=%d service=%d: %v",
			garageID, serviceID, err)
		return nil, fmt.Errorf("%w: failed to count overlapping reservations: %v", ErrInternal, err)
	}

	remaining := offering.Capacity - booked
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Available:      booked < offering.Capacity,
		Capacity:       offering.Capacity,
		Booked:         booked,
		RemainingSlots: remaining,
		PricingType:    offering.PricingType,
		Price:          offering.Price,
		TimeSlot:       timeSlot,
		EndTime:        endTime,
	}, nil
}

// DaySlots перечисляет доступность слотов на дату в рабочем окне платформы
// (08:00-18:00 с шагом 30 минут). Слоты, для которых проверка не удалась
// (услуга не настроена, временная ошибка), молча пропускаются: перечисление
// дня должно деградировать послотово, а не падать целиком.
// Результат отсортирован хронологически.
func (s *Service) DaySlots(ctx context.Context, garageID, serviceID int64, date time.Time) ([]domain.DaySlot, error) {
	if garageID <= 0 || serviceID <= 0 {
		return nil, fmt.Errorf("%w: garageID and serviceID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Услуга не настроена или недоступна в гараже - день без слотов
	if _, err := s.offeringRepo.GetByGarageAndService(ctx, garageID, serviceID); err != nil {
		if errors.Is(err, offeringRepo.ErrOfferingNotFound) {
			s.logger.Warn("DaySlots: service id=%d not offered by garage id=%d", serviceID, garageID)
			return []domain.DaySlot{}, nil
		}
		s.logger.Error("DaySlots: failed to get offering garage=%d service=%d: %v", garageID, serviceID, err)
		return nil, fmt.Errorf("%w: failed to get offering: %v", ErrInternal, err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	slots := make([]domain.DaySlot, 0)

	for hour := domain.DayWindowOpenHour; hour < domain.DayWindowCloseHour; hour++ {
		for minute := 0; minute < 60; minute += domain.SlotIntervalMinutes {
			candidate := dayStart.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)

			result, err := s.Check(ctx, garageID, serviceID, candidate)
			if err != nil {
				continue
			}

			slots = append(slots, domain.DaySlot{
				TimeSlot:       candidate,
				Available:      result.Available,
				RemainingSlots: result.RemainingSlots,
			})
		}
	}

	s.logger.Info("DaySlots: generated %d slots for garage=%d service=%d date=%s",
		len(slots), garageID, serviceID, dayStart.Format(domain.DateFormat))

	return slots, nil
}
