package list_locations

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/locations/models"
)

type LocationService interface {
	List(ctx context.Context, req *models.ListLocationsRequest) (*models.LocationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
