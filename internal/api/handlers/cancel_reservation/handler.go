package cancel_reservation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/lifecycle"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронь не найдена"
	msgAlreadyTerminal      = "завершенную или отмененную бронь нельзя отменить"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

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

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Тело опционально: отмена без причины - валидный запрос
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.service.Cancel(r.Context(), reservationID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lifecycle.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Already terminal: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondConflict(w, msgAlreadyTerminal)

		case errors.Is(err, lifecycle.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(reservation))
}
