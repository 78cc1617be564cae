package update_location

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/locations"
)

const (
	msgInvalidLocationID  = "некорректный ID локации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "локация не найдена"
	msgDuplicateName      = "локация с таким названием уже существует"
	msgSlotsInUse         = "удаляемые места заняты текущими или будущими бронированиями"
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

// Handle PUT /api/v1/admin/locations/{locationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.PathInt64(r, "locationId")
	if err != nil {
		h.logger.Warn("PUT /admin/locations/{id} - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	var req UpdateLocationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /admin/locations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	loc, err := h.service.Update(r.Context(), locationID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, locations.ErrLocationNotFound):
			h.logger.Warn("PUT /admin/locations/{id} - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, locations.ErrDuplicateName):
			h.logger.Warn("PUT /admin/locations/{id} - Duplicate name: location_id=%d", locationID)
			handlers.RespondConflict(w, msgDuplicateName)

		case errors.Is(err, locations.ErrSlotsInUse):
			h.logger.Warn("PUT /admin/locations/{id} - Slots in use: location_id=%d", locationID)
			handlers.RespondConflict(w, msgSlotsInUse)

		case errors.Is(err, locations.ErrInvalidInput):
			h.logger.Warn("PUT /admin/locations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /admin/locations/{id} - Failed to update location: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/locations/{id} - Location updated successfully: location_id=%d", locationID)
	handlers.RespondJSON(w, http.StatusOK, loc)
}
