package confirm_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/lifecycle"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgNotFound             = "бронь не найдена"
	msgInvalidTransition    = "подтвердить можно только бронь в статусе pending"
)

type Handler struct {
	service LifecycleService
	logger  Logger
}

func NewHandler(service LifecycleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	reservation, err := h.service.Confirm(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lifecycle.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid transition: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, lifecycle.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("PATCH /reservations/{id}/confirm - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/confirm - Reservation confirmed: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(reservation))
}
