package offerings

import (
	"context"
	"errors"
	"fmt"

	offeringRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/offering"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/offerings/models"
)

// Service сервис управления конфигурациями услуг гаража
type Service struct {
	offeringRepo OfferingRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигураций услуг
func NewService(offeringRepo OfferingRepository, logger Logger) *Service {
	return &Service{
		offeringRepo: offeringRepo,
		logger:       logger,
	}
}

// Upsert создает или обновляет конфигурацию услуги гаража.
// Инварианты режима ценообразования (fixed требует цену, quote/consultation
// запрещают её) проверяются до записи.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertOfferingRequest) (*models.OfferingResponse, error) {
	if req.GarageID <= 0 || req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: garageId and serviceId must be positive", ErrInvalidInput)
	}

	offering := req.ToDomain()

	// Длительность наследуется от услуги каталога, гараж её не задает
	serviceName, durationMinutes, err := s.offeringRepo.GetCatalogService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrOfferingNotFound) {
			s.logger.Warn("Upsert: catalog service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Upsert: failed to get catalog service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Upsert - failed to get catalog service: %v", ErrInternal, err)
	}
	offering.ServiceName = serviceName
	offering.DurationMinutes = durationMinutes

	if err := offering.Validate(); err != nil {
		s.logger.Warn("Upsert: invalid offering garage=%d service=%d: %v", req.GarageID, req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPricingConfig, err)
	}

	saved, err := s.offeringRepo.Upsert(ctx, offering)
	if err != nil {
		s.logger.Error("Upsert: repository error for garage=%d service=%d: %v", req.GarageID, req.ServiceID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved offering id=%d garage=%d service=%d pricing=%s",
		saved.ID, saved.GarageID, saved.ServiceID, saved.PricingType)

	return models.FromDomainOffering(saved), nil
}

// GetAllByGarage получает все конфигурации услуг гаража, включая недоступные
func (s *Service) GetAllByGarage(ctx context.Context, garageID int64) (*models.OfferingListResponse, error) {
	if garageID <= 0 {
		return nil, fmt.Errorf("%w: garageId must be positive", ErrInvalidInput)
	}

	offerings, err := s.offeringRepo.GetAllByGarage(ctx, garageID)
	if err != nil {
		s.logger.Error("GetAllByGarage: repository error for garage=%d: %v", garageID, err)
		return nil, fmt.Errorf("%w: GetAllByGarage - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOfferingList(offerings), nil
}
