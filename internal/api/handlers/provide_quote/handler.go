package provide_quote

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
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронь не найдена"
	msgInvalidTransition    = "смету можно выставить только по заявке в статусе pending_quote"
)

// ProvideQuoteRequest HTTP request model
type ProvideQuoteRequest struct {
	Price       float64 `json:"price"`
	GarageNotes *string `json:"garageNotes,omitempty"`
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

// Handle PATCH /api/v1/reservations/{reservationId}/provide-quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/provide-quote - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req ProvideQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/provide-quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.service.ProvideQuote(r.Context(), reservationID, req.Price, req.GarageNotes)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/provide-quote - Reservation not found: reservation_id=%d",
				reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lifecycle.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /reservations/{id}/provide-quote - Invalid transition: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, lifecycle.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/provide-quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/provide-quote - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/provide-quote - Quote provided: reservation_id=%d, price=%.2f",
		reservationID, req.Price)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(reservation))
}
