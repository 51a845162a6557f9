package accept_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/api/middleware"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/lifecycle"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "принять смету может только владелец брони"
	msgInvalidTransition    = "принять можно только выставленную смету"
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

// Handle PATCH /api/v1/reservations/{reservationId}/accept-quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/accept-quote - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/accept-quote - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	reservation, err := h.service.AcceptQuote(r.Context(), reservationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/accept-quote - Reservation not found: reservation_id=%d",
				reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lifecycle.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/accept-quote - Access denied: user_id=%d, reservation_id=%d",
				userID, reservationID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lifecycle.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /reservations/{id}/accept-quote - Invalid transition: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, lifecycle.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("PATCH /reservations/{id}/accept-quote - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/accept-quote - Quote accepted: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(reservation))
}
