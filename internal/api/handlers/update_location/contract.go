package update_location

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/locations/models"
)

type LocationService interface {
	Update(ctx context.Context, id int64, req *models.UpdateLocationRequest) (*models.LocationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
