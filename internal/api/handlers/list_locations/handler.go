package list_locations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/locations"
	"github.com/m04kA/SMC-ParkingService/internal/service/locations/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidType   = "некорректный тип локации, ожидается MALL, BANDARA или GEDUNG"
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

// Handle GET /api/v1/locations
// Query params: q, type, page, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page, limit, err := handlers.Pagination(r)
	if err != nil {
		h.logger.Warn("GET /locations - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.ListLocationsRequest{
		Query: r.URL.Query().Get("q"),
		Type:  handlers.QueryStringPtr(r, "type"),
		Page:  page,
		Limit: limit,
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, locations.ErrInvalidInput) {
			h.logger.Warn("GET /locations - Invalid type: %v", req.Type)
			handlers.RespondBadRequest(w, msgInvalidType)
			return
		}
		h.logger.Error("GET /locations - Failed to list locations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /locations - Locations retrieved successfully: count=%d, total=%d", len(result.Items), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
