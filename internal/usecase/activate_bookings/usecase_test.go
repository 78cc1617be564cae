package activate_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	n      int64
	err    error
	gotNow time.Time
}

func (r *fakeRepo) ActivateDue(_ context.Context, now time.Time) (int64, error) {
	r.gotNow = now
	return r.n, r.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type countMetrics struct{ total int64 }

func (m *countMetrics) Activated(n int64) { m.total += n }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{n: 3}
	m := &countMetrics{}

	uc := NewUseCase(repo, m, nopLogger{})
	uc.timeProvider = fixedTime{t: now}

	n, err := uc.Execute(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, now, repo.gotNow)
	assert.Equal(t, int64(3), m.total)
}

func TestExecute_Error(t *testing.T) {
	uc := NewUseCase(&fakeRepo{err: errors.New("db down")}, &countMetrics{}, nopLogger{})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
