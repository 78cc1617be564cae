package get_analytics

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

type ReportService interface {
	Analytics(ctx context.Context) *models.AnalyticsResponse
}

type Logger interface {
	Info(format string, v ...interface{})
}

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/analytics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := h.service.Analytics(r.Context())

	h.logger.Info("GET /admin/analytics - Analytics retrieved: active=%d, occupancy=%.1f",
		result.ActiveSessions, result.OccupancyRate)
	handlers.RespondJSON(w, http.StatusOK, result)
}
