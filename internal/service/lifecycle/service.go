package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	reservationRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/reservation"
)

// Service управляет переходами статусов броней.
// Каждый переход проверяет предусловие по таблице переходов, выполняет
// условный UPDATE с защитой по статусу и публикует доменное событие только
// после успешной фиксации. Проигранная гонка за статус неотличима для
// вызывающего от недопустимого перехода: в обоих случаях текущий статус
// брони не позволяет действие.
type Service struct {
	reservationRepo ReservationRepository
	events          EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса жизненного цикла броней
func NewService(
	reservationRepo ReservationRepository,
	events EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		events:          events,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// ProvideQuote выставляет смету по заявке со статусом pending_quote
func (s *Service) ProvideQuote(ctx context.Context, reservationID int64, price float64, garageNotes *string) (*domain.Reservation, error) {
	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if garageNotes != nil && len(*garageNotes) > domain.MaxGarageNotesLength {
		return nil, fmt.Errorf("%w: garageNotes must not exceed %d characters", ErrInvalidInput, domain.MaxGarageNotesLength)
	}

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	target, ok := domain.TransitionTarget(reservation.Status, domain.ActionProvideQuote)
	if !ok {
		return nil, s.invalidTransition(reservation.Status, domain.ActionProvideQuote)
	}

	upd := reservationRepo.TransitionUpdate{
		Status:      target,
		Price:       &price,
		GarageNotes: garageNotes,
	}

	return s.finishTransition(ctx, reservation, domain.ActionProvideQuote, upd, domain.EventQuoteProvided)
}

// AcceptQuote принимает смету от имени клиента. Принять смету может только
// владелец брони; проверка владения выполняется до проверки статуса.
func (s *Service) AcceptQuote(ctx context.Context, reservationID, userID int64) (*domain.Reservation, error) {
	if reservationID <= 0 || userID <= 0 {
		return nil, fmt.Errorf("%w: reservationID and userID must be positive", ErrInvalidInput)
	}

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.IsOwnedBy(userID) {
		s.logger.Warn("AcceptQuote: user %d attempted to accept quote for reservation %d owned by %d",
			userID, reservationID, reservation.UserID)
		return nil, ErrAccessDenied
	}

	target, ok := domain.TransitionTarget(reservation.Status, domain.ActionAcceptQuote)
	if !ok {
		return nil, s.invalidTransition(reservation.Status, domain.ActionAcceptQuote)
	}

	now := s.timeProvider.Now()
	upd := reservationRepo.TransitionUpdate{
		Status:      target,
		ConfirmedAt: &now,
	}

	return s.finishTransition(ctx, reservation, domain.ActionAcceptQuote, upd, domain.EventReservationConfirmed)
}

// Confirm подтверждает бронь с фиксированной ценой (операторский путь)
func (s *Service) Confirm(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	target, ok := domain.TransitionTarget(reservation.Status, domain.ActionConfirm)
	if !ok {
		return nil, s.invalidTransition(reservation.Status, domain.ActionConfirm)
	}

	now := s.timeProvider.Now()
	upd := reservationRepo.TransitionUpdate{
		Status:      target,
		ConfirmedAt: &now,
	}

	return s.finishTransition(ctx, reservation, domain.ActionConfirm, upd, domain.EventReservationConfirmed)
}

// StartService отмечает начало работ по подтвержденной брони.
// Внутренняя операционная отметка, событие не публикуется.
func (s *Service) StartService(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	target, ok := domain.TransitionTarget(reservation.Status, domain.ActionStart)
	if !ok {
		return nil, s.invalidTransition(reservation.Status, domain.ActionStart)
	}

	upd := reservationRepo.TransitionUpdate{Status: target}

	return s.finishTransition(ctx, reservation, domain.ActionStart, upd, "")
}

// Complete завершает работы по брони. Допускается как из in_progress,
// так и напрямую из confirmed, если начало работ не отмечалось.
func (s *Service) Complete(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	target, ok := domain.TransitionTarget(reservation.Status, domain.ActionComplete)
	if !ok {
		return nil, s.invalidTransition(reservation.Status, domain.ActionComplete)
	}

	now := s.timeProvider.Now()
	upd := reservationRepo.TransitionUpdate{
		Status:      target,
		CompletedAt: &now,
	}

	return s.finishTransition(ctx, reservation, domain.ActionComplete, upd, domain.EventReservationCompleted)
}

// Cancel отменяет бронь из любого нетерминального статуса
func (s *Service) Cancel(ctx context.Context, reservationID int64, reason *string) (*domain.Reservation, error) {
	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if reason != nil && len(*reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	target, ok := domain.TransitionTarget(reservation.Status, domain.ActionCancel)
	if !ok {
		return nil, s.invalidTransition(reservation.Status, domain.ActionCancel)
	}

	cancellationReason := ""
	if reason != nil {
		cancellationReason = *reason
	}

	now := s.timeProvider.Now()
	upd := reservationRepo.TransitionUpdate{
		Status:             target,
		CancellationReason: &cancellationReason,
		CancelledAt:        &now,
	}

	return s.finishTransition(ctx, reservation, domain.ActionCancel, upd, domain.EventReservationCancelled)
}

func (s *Service) getReservation(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("getReservation: failed to get reservation %d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return reservation, nil
}

// finishTransition выполняет защищенный UPDATE, перечитывает бронь и
// публикует событие. Защита по статусу закрывает гонку между конкурентными
// переходами: проигравший получает ErrStaleStatus и после перечитывания
// отвечает ошибкой недопустимого перехода с актуальным статусом.
func (s *Service) finishTransition(
	ctx context.Context,
	reservation *domain.Reservation,
	action domain.TransitionAction,
	upd reservationRepo.TransitionUpdate,
	eventName string,
) (*domain.Reservation, error) {
	err := s.reservationRepo.Transition(ctx, reservation.ID, []domain.ReservationStatus{reservation.Status}, upd)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrStaleStatus) {
			fresh, freshErr := s.getReservation(ctx, reservation.ID)
			if freshErr != nil {
				return nil, freshErr
			}
			s.logger.Warn("finishTransition: lost status race on reservation %d: expected %s, found %s",
				reservation.ID, reservation.Status, fresh.Status)
			return nil, s.invalidTransition(fresh.Status, action)
		}
		s.logger.Error("finishTransition: failed to update reservation %d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
	}

	updated, err := s.getReservation(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("finishTransition: reservation %d moved %s -> %s",
		updated.ID, reservation.Status, updated.Status)

	if eventName != "" {
		if pubErr := s.events.Publish(ctx, eventName, updated); pubErr != nil {
			// Переход уже зафиксирован; сбой доставки события его не откатывает
			s.logger.Error("finishTransition: failed to publish %s for reservation %d: %v",
				eventName, updated.ID, pubErr)
		}
	}

	return updated, nil
}

func (s *Service) invalidTransition(current domain.ReservationStatus, action domain.TransitionAction) error {
	return fmt.Errorf("%w: action %s is not allowed from status %s", ErrInvalidStatusTransition, action, current)
}
