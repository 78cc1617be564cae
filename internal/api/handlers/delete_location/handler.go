package delete_location

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/locations"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgNotFound          = "локация не найдена"
	msgLocationInUse     = "у локации есть бронирования, удаление невозможно"
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

// Handle DELETE /api/v1/admin/locations/{locationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.PathInt64(r, "locationId")
	if err != nil {
		h.logger.Warn("DELETE /admin/locations/{id} - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	if err := h.service.Delete(r.Context(), locationID); err != nil {
		switch {
		case errors.Is(err, locations.ErrLocationNotFound):
			h.logger.Warn("DELETE /admin/locations/{id} - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, locations.ErrLocationInUse):
			h.logger.Warn("DELETE /admin/locations/{id} - Location in use: location_id=%d", locationID)
			handlers.RespondConflict(w, msgLocationInUse)

		default:
			h.logger.Error("DELETE /admin/locations/{id} - Failed to delete location: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/locations/{id} - Location deleted successfully: location_id=%d", locationID)
	w.WriteHeader(http.StatusNoContent)
}
