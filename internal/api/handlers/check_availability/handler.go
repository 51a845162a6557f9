package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeSlot    = "некорректный формат времени слота, ожидается RFC3339"
	msgOfferingNotFound   = "услуга не предоставляется этим гаражом"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/check-availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/check-availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	timeSlot, err := time.Parse(time.RFC3339, req.TimeSlot)
	if err != nil {
		h.logger.Warn("POST /reservations/check-availability - Invalid time slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)
		return
	}

	result, err := h.service.Check(r.Context(), req.GarageID, req.ServiceID, timeSlot)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrOfferingNotFound):
			h.logger.Warn("POST /reservations/check-availability - Offering not found: garage_id=%d, service_id=%d",
				req.GarageID, req.ServiceID)
			handlers.RespondNotFound(w, msgOfferingNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /reservations/check-availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations/check-availability - Failed: garage_id=%d, service_id=%d, error=%v",
				req.GarageID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}
