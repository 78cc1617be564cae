package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidLocationID  = "некорректный ID локации"
	msgInvalidRequestBody = "некорректное тело запроса, ожидаются startTime и endTime в RFC 3339"
	msgInvalidWindow      = "время окончания должно быть позже времени начала"
	msgLocationNotFound   = "локация не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/locations/{locationId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.PathInt64(r, "locationId")
	if err != nil {
		h.logger.Warn("POST /locations/{id}/availability - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	var req AvailabilityRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /locations/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(locationID))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrLocationNotFound):
			h.logger.Warn("POST /locations/{id}/availability - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidWindow), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("POST /locations/{id}/availability - Invalid window: location_id=%d, error=%v", locationID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("POST /locations/{id}/availability - Failed to get slots: location_id=%d, error=%v",
				locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /locations/{id}/availability - Slots retrieved successfully: location_id=%d, available=%d/%d",
		locationID, result.AvailableSlots, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
