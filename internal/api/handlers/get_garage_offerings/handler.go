package get_garage_offerings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeevlv/GMS-ReservationService/internal/api/handlers"
	"github.com/avdeevlv/GMS-ReservationService/internal/service/offerings"
)

const (
	msgInvalidGarageID = "некорректный ID гаража"
)

type Handler struct {
	service OfferingService
	logger  Logger
}

func NewHandler(service OfferingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/garages/{garageId}/offerings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	garageID, err := strconv.ParseInt(vars["garageId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /garages/{id}/offerings - Invalid garage ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGarageID)
		return
	}

	result, err := h.service.GetAllByGarage(r.Context(), garageID)
	if err != nil {
		switch {
		case errors.Is(err, offerings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidGarageID)

		default:
			h.logger.Error("GET /garages/{id}/offerings - Failed: garage_id=%d, error=%v", garageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
