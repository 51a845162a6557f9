package create_reservation

import (
	"errors"
	"net/http"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/api/middleware"
	createReservation "github.com/avdeevlv/GMS-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeSlot    = "некорректный формат времени слота, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgServiceNotFound    = "услуга не предоставляется этим гаражом"
	msgSlotInPast         = "временной слот должен быть в будущем"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid time slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: user_id=%d, garage_id=%d", userID, req.GarageID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: garage_id=%d, service_id=%d",
				req.GarageID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Slot in the past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, garage_id=%d, error=%v",
				userID, req.GarageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, status=%s",
		result.ID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
