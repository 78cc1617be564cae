package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidWindow возвращается, когда конец интервала не позже начала
	ErrInvalidWindow = errors.New("domain: end time must be after start time")

	// ErrWindowInPast возвращается, когда интервал целиком в прошлом
	ErrWindowInPast = errors.New("domain: time window is in the past")
)

// TimeWindow полуоткрытый интервал [Start, End)
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Validate проверяет, что End строго позже Start
func (w TimeWindow) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() || !w.End.After(w.Start) {
		return ErrInvalidWindow
	}
	return nil
}

// ValidateAt дополнительно отклоняет интервал, закончившийся до now
func (w TimeWindow) ValidateAt(now time.Time) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if !w.End.After(now) {
		return ErrWindowInPast
	}
	return nil
}

// Overlaps пересекаются ли интервалы. Касание границ пересечением не считается
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Duration длительность интервала
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
