package get_revenue_report

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
)

type ReportService interface {
	Revenue(ctx context.Context, req *models.RevenueRequest) (*models.RevenueReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
