package create_location

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/locations"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateName      = "локация с таким названием уже существует"
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

// Handle POST /api/v1/admin/locations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/locations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	loc, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, locations.ErrDuplicateName):
			h.logger.Warn("POST /admin/locations - Duplicate name: %q", req.Name)
			handlers.RespondConflict(w, msgDuplicateName)

		case errors.Is(err, locations.ErrInvalidInput):
			h.logger.Warn("POST /admin/locations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /admin/locations - Failed to create location: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/locations - Location created successfully: location_id=%d, slots=%d",
		loc.ID, loc.TotalSlots)
	handlers.RespondJSON(w, http.StatusCreated, loc)
}
