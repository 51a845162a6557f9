package get_user_reservations

import (
	"errors"
	"net/http"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/api/middleware"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус брони"
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

// Handle GET /api/v1/reservations?status=confirmed&upcoming=true
// Возвращает брони аутентифицированного пользователя.
// upcoming=true ограничивает выборку предстоящими активными бронями.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	var result *models.ReservationListResponse
	var err error

	if query.Get("upcoming") == "true" {
		result, err = h.service.GetUpcoming(r.Context(), userID)
	} else {
		req := &models.GetUserReservationsRequest{UserID: userID}
		if status := query.Get("status"); status != "" {
			req.Status = &status
		}
		result, err = h.service.GetUserReservations(r.Context(), req)
	}

	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /reservations - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
