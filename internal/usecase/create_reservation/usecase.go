package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/availability"
)

// UseCase use case для создания брони
type UseCase struct {
	reservationRepo ReservationRepository
	availability    AvailabilityService
	events          EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	availabilitySvc AvailabilityService,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		availability:    availabilitySvc,
		events:          events,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони.
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции: два конкурентных запроса на последнее место не могут оба
// пройти проверку - проигравший получает ошибку сериализации и
// повторяется менеджером транзакций поверх нового снимка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, garage=%d, service=%d, slot=%s",
		req.UserID, req.GarageID, req.ServiceID, req.TimeSlot.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Слот должен быть в будущем
	now := uc.timeProvider.Now()
	if err := validateTimeSlot(req.TimeSlot, now); err != nil {
		uc.logger.Warn("CreateReservation: time slot %s is in the past", req.TimeSlot.Format(time.RFC3339))
		return nil, err
	}

	var result *domain.Reservation
	var checkResult *availability.Result

	// 3. Проверка доступности и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		check, err := uc.availability.Check(txCtx, req.GarageID, req.ServiceID, req.TimeSlot)
		if err != nil {
			if errors.Is(err, availability.ErrOfferingNotFound) {
				uc.logger.Warn("CreateReservation: service id=%d not offered by garage id=%d",
					req.ServiceID, req.GarageID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateReservation: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		if !check.Available {
			uc.logger.Warn("CreateReservation: slot not available, %d/%d spots taken",
				check.Booked, check.Capacity)
			return ErrSlotNotAvailable
		}

		// Начальный статус и цена определяются режимом ценообразования:
		// fixed попадает в pending с ценой, quote и consultation - в свои
		// очереди ожидания без цены
		status := check.PricingType.InitialStatus()

		var price *float64
		if check.PricingType == domain.PricingFixed {
			price = check.Price
		}

		reservation := &domain.Reservation{
			UserID:      req.UserID,
			GarageID:    req.GarageID,
			ServiceID:   req.ServiceID,
			TimeSlot:    req.TimeSlot,
			EndTime:     check.EndTime,
			Status:      status,
			Price:       price,
			ClientNotes: req.ClientNotes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		checkResult = check
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d status=%s", result.ID, result.Status)

	// 4. Перечитываем бронь с денормализованными названиями для события и ответа
	full, err := uc.reservationRepo.GetByID(ctx, result.ID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to reload reservation id=%d: %v", result.ID, err)
		full = result
	}

	// 5. Публикуем событие после фиксации; сбой доставки не откатывает бронь
	if pubErr := uc.events.Publish(ctx, domain.EventReservationCreated, full); pubErr != nil {
		uc.logger.Error("CreateReservation: failed to publish %s for reservation id=%d: %v",
			domain.EventReservationCreated, full.ID, pubErr)
	}

	remaining := checkResult.RemainingSlots
	if full.Status.ConsumesCapacity() {
		remaining--
		if remaining < 0 {
			remaining = 0
		}
	}

	return &Response{
		ID:             full.ID,
		UserID:         full.UserID,
		GarageID:       full.GarageID,
		ServiceID:      full.ServiceID,
		TimeSlot:       full.TimeSlot,
		EndTime:        full.EndTime,
		Status:         string(full.Status),
		Price:          full.Price,
		ClientNotes:    full.ClientNotes,
		GarageName:     full.GarageName,
		ServiceName:    full.ServiceName,
		CreatedAt:      full.CreatedAt,
		UpdatedAt:      full.UpdatedAt,
		RemainingSlots: remaining,
	}, nil
}
