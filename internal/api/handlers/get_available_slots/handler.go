package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	getDaySlots "github.com/avdeevlv/GMS-ReservationService/internal/usecase/get_day_slots"
)

const (
	msgInvalidGarageID  = "некорректный ID гаража"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/available-slots?garageId=1&serviceId=2&date=2025-10-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	garageID, err := strconv.ParseInt(query.Get("garageId"), 10, 64)
	if err != nil || garageID <= 0 {
		h.logger.Warn("GET /reservations/available-slots - Invalid garage ID: %q", query.Get("garageId"))
		handlers.RespondBadRequest(w, msgInvalidGarageID)
		return
	}

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /reservations/available-slots - Invalid service ID: %q", query.Get("serviceId"))
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /reservations/available-slots - Invalid date: %q", query.Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySlots.Request{
		GarageID:  garageID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrInvalidInput):
			h.logger.Warn("GET /reservations/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /reservations/available-slots - Failed: garage_id=%d, service_id=%d, error=%v",
				garageID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
