package get_pending_quotes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/reservations"
)

const (
	msgInvalidGarageID = "некорректный ID гаража"
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

// Handle GET /api/v1/garages/{garageId}/pending-quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	garageID, err := strconv.ParseInt(vars["garageId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /garages/{id}/pending-quotes - Invalid garage ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGarageID)
		return
	}

	result, err := h.service.GetPendingQuotes(r.Context(), garageID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidGarageID)

		default:
			h.logger.Error("GET /garages/{id}/pending-quotes - Failed: garage_id=%d, error=%v", garageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
