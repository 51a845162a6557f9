package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	reservationRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/reservation"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations/models"
)

// Service сервис чтения броней
type Service struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса чтения броней
func NewService(
	reservationRepo ReservationRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает бронь по ID.
// Клиент видит только свою бронь; гаражные роли видят любую.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role string) (*models.ReservationResponse, error) {
	if id <= 0 || userID <= 0 {
		return nil, fmt.Errorf("%w: id and userID must be positive", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !reservation.IsOwnedBy(userID) && !isGarageScopedRole(role) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю броней пользователя.
// Опционально фильтрует по статусу.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetUpcoming получает предстоящие активные брони пользователя
func (s *Service) GetUpcoming(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetUpcomingByUser(ctx, userID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetUpcoming: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUpcoming - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// GetGarageReservations получает брони гаража с гибкой фильтрацией.
// Поддерживает фильтрацию по клиенту, периоду и статусу.
func (s *Service) GetGarageReservations(ctx context.Context, req *models.GetGarageReservationsRequest) (*models.ReservationListResponse, error) {
	if req.GarageID <= 0 {
		return nil, fmt.Errorf("%w: garageID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetGarageReservations: invalid filter for garage=%d: %v", req.GarageID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByGarageWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetGarageReservations: repository error for garage=%d: %v", req.GarageID, err)
		return nil, fmt.Errorf("%w: GetGarageReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGarageReservations: fetched %d reservations for garage=%d", len(reservations), req.GarageID)
	return models.FromDomainReservationList(reservations), nil
}

// GetPendingQuotes получает заявки гаража, ожидающие выставления сметы
func (s *Service) GetPendingQuotes(ctx context.Context, garageID int64) (*models.ReservationListResponse, error) {
	if garageID <= 0 {
		return nil, fmt.Errorf("%w: garageID must be positive", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetPendingQuotes(ctx, garageID)
	if err != nil {
		s.logger.Error("GetPendingQuotes: repository error for garage=%d: %v", garageID, err)
		return nil, fmt.Errorf("%w: GetPendingQuotes - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

func isGarageScopedRole(role string) bool {
	return role == domain.RoleGarageOwner || role == domain.RoleAdmin
}
