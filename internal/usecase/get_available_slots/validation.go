package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	window := domain.TimeWindow{Start: req.StartTime, End: req.EndTime}
	if err := window.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	return nil
}
