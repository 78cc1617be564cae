package get_location

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/locations/models"
)

type LocationService interface {
	Get(ctx context.Context, id int64) (*models.LocationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
