package get_revenue_report

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidRange  = "некорректный период, ожидаются from и to в формате YYYY-MM-DD, from не позже to"
)

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

// Handle GET /api/v1/admin/reports/revenue
// Query params: from, to (обязательные, YYYY-MM-DD), locationId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.QueryInt64Ptr(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /admin/reports/revenue - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.RevenueRequest{
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
		LocationID: locationID,
	}

	report, err := h.service.Revenue(r.Context(), req)
	if err != nil {
		if errors.Is(err, reports.ErrInvalidInput) {
			h.logger.Warn("GET /admin/reports/revenue - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /admin/reports/revenue - Failed to build report: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/reports/revenue - Report built: from=%s, to=%s, bookings=%d",
		report.From, report.To, report.Totals.Bookings)
	handlers.RespondJSON(w, http.StatusOK, report)
}
