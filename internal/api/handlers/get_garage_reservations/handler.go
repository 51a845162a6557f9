package get_garage_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidGarageID = "некорректный ID гаража"
	msgInvalidParams   = "некорректные параметры фильтрации"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/garages/{garageId}/reservations?userId=&startDate=&endDate=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	garageID, err := strconv.ParseInt(vars["garageId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /garages/{id}/reservations - Invalid garage ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGarageID)
		return
	}

	req := &models.GetGarageReservationsRequest{GarageID: garageID}

	query := r.URL.Query()

	if rawUserID := query.Get("userId"); rawUserID != "" {
		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.UserID = &userID
	}

	if rawStart := query.Get("startDate"); rawStart != "" {
		startDate, err := time.Parse(domain.DateFormat, rawStart)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.StartDate = &startDate
	}

	if rawEnd := query.Get("endDate"); rawEnd != "" {
		endDate, err := time.Parse(domain.DateFormat, rawEnd)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetGarageReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /garages/{id}/reservations - Invalid input: garage_id=%d, error=%v", garageID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /garages/{id}/reservations - Failed: garage_id=%d, error=%v", garageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
