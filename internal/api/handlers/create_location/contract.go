package create_location

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/locations/models"
)

type LocationService interface {
	Create(ctx context.Context, req *models.CreateLocationRequest) (*models.LocationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
