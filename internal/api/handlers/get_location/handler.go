package get_location

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/locations"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgNotFound          = "локация не найдена"
)

type Handler struct {
	service LocationService
	logger  Logger
}

func NewHandler(service LocationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.PathInt64(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /locations/{id} - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	loc, err := h.service.Get(r.Context(), locationID)
	if err != nil {
		if errors.Is(err, locations.ErrLocationNotFound) {
			h.logger.Warn("GET /locations/{id} - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /locations/{id} - Failed to get location: location_id=%d, error=%v", locationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /locations/{id} - Location retrieved successfully: location_id=%d", locationID)
	handlers.RespondJSON(w, http.StatusOK, loc)
}
