package get_active_sessions

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/sessions
// Query params: locationId, page, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page, limit, err := handlers.Pagination(r)
	if err != nil {
		h.logger.Warn("GET /admin/sessions - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	locationID, err := handlers.QueryInt64Ptr(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /admin/sessions - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetActiveSessions(r.Context(), &models.GetActiveSessionsRequest{
		LocationID: locationID,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		h.logger.Error("GET /admin/sessions - Failed to get sessions: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/sessions - Sessions retrieved successfully: count=%d, total=%d",
		len(result.Items), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
