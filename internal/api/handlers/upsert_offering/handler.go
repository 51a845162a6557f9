package upsert_offering

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/offerings"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/offerings/models"
)

const (
	msgInvalidGarageID      = "некорректный ID гаража"
	msgInvalidServiceID     = "некорректный ID услуги"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgServiceNotFound      = "услуга не найдена в каталоге"
	msgInvalidPricingConfig = "конфигурация цены не соответствует режиму ценообразования"
)

// UpsertOfferingBody HTTP request model.
// ID гаража и услуги приходят в пути, остальное в теле.
type UpsertOfferingBody struct {
	Capacity    int      `json:"capacity"`
	PricingType string   `json:"pricingType"`
	Price       *float64 `json:"price,omitempty"`
	IsAvailable bool     `json:"isAvailable"`
	Notes       *string  `json:"notes,omitempty"`
}

type Handler struct {
	service OfferingService
	logger  Logger
}

func NewHandler(service OfferingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/garages/{garageId}/offerings/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	garageID, err := strconv.ParseInt(vars["garageId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /garages/{id}/offerings/{serviceId} - Invalid garage ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGarageID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /garages/{id}/offerings/{serviceId} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var body UpsertOfferingBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /garages/{id}/offerings/{serviceId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), &models.UpsertOfferingRequest{
		GarageID:    garageID,
		ServiceID:   serviceID,
		Capacity:    body.Capacity,
		PricingType: body.PricingType,
		Price:       body.Price,
		IsAvailable: body.IsAvailable,
		Notes:       body.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, offerings.ErrServiceNotFound):
			h.logger.Warn("PUT /garages/{id}/offerings/{serviceId} - Catalog service not found: service_id=%d",
				serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, offerings.ErrInvalidPricingConfig):
			h.logger.Warn("PUT /garages/{id}/offerings/{serviceId} - Invalid pricing config: garage_id=%d, service_id=%d, error=%v",
				garageID, serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidPricingConfig)

		case errors.Is(err, offerings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /garages/{id}/offerings/{serviceId} - Failed: garage_id=%d, service_id=%d, error=%v",
				garageID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /garages/{id}/offerings/{serviceId} - Offering saved: offering_id=%d, garage_id=%d, service_id=%d",
		result.ID, garageID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
