package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	window := domain.TimeWindow{Start: req.EntryTime, End: req.EstimatedExitTime}
	if err := window.ValidateAt(now); err != nil {
		if errors.Is(err, domain.ErrWindowInPast) {
			return fmt.Errorf("%w: estimated exit time is in the past", ErrInvalidWindow)
		}
		return fmt.Errorf("%w: estimated exit time must be after entry time", ErrInvalidWindow)
	}

	return nil
}
