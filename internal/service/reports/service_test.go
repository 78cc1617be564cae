package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reports/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var errDB = errors.New("db is down")

type fakeRepo struct {
	lastFilter   domain.RevenueFilter
	lastTimezone string
	failSlots    bool
	todayFrom    time.Time
	todayTo      time.Time
}

func (r *fakeRepo) RevenueTotals(_ context.Context, f domain.RevenueFilter) (domain.RevenueTotals, error) {
	r.lastFilter = f
	return domain.RevenueTotals{Bookings: 3, Revenue: 25000, Hours: 5}, nil
}

func (r *fakeRepo) RevenueByLocation(context.Context, domain.RevenueFilter) ([]domain.LocationRevenue, error) {
	return []domain.LocationRevenue{{LocationID: 1, LocationName: "Grand Mall", Bookings: 3, Revenue: 25000}}, nil
}

func (r *fakeRepo) RevenueByDay(_ context.Context, _ domain.RevenueFilter, tz string) ([]domain.DailyRevenue, error) {
	r.lastTimezone = tz
	return []domain.DailyRevenue{{Day: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Bookings: 3, Revenue: 25000}}, nil
}

func (r *fakeRepo) CountLocations(context.Context) (int64, error) { return 2, nil }

func (r *fakeRepo) CountSlots(context.Context) (int64, error) {
	if r.failSlots {
		return 0, errDB
	}
	return 40, nil
}

func (r *fakeRepo) CountActive(context.Context, time.Time) (int64, error)   { return 10, nil }
func (r *fakeRepo) CountUpcoming(context.Context, time.Time) (int64, error) { return 4, nil }

func (r *fakeRepo) CompletedBetween(_ context.Context, from, to time.Time) (int64, int64, error) {
	r.todayFrom, r.todayTo = from, to
	return 6, 30000, nil
}

func (r *fakeRepo) BookingsByLocationType(context.Context) (map[domain.LocationType]int64, error) {
	return map[domain.LocationType]int64{domain.LocationMall: 7}, nil
}

// readOnlyTx считает вызовы DoReadOnly
type readOnlyTx struct {
	calls int
	err   error
}

func (t *readOnlyTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if t.err != nil {
		return t.err
	}
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func jakarta(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func TestRevenue_RangeCoversLastDay(t *testing.T) {
	repo := &fakeRepo{}
	tz := jakarta(t)
	s := NewService(repo, &readOnlyTx{}, tz, 31, nopLogger{})

	resp, err := s.Revenue(context.Background(), &models.RevenueRequest{From: "2026-10-01", To: "2026-10-07", LocationID: ptr.Ptr(int64(1))})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, tz), repo.lastFilter.From)
	assert.Equal(t, time.Date(2026, 10, 8, 0, 0, 0, 0, tz), repo.lastFilter.To)
	assert.Equal(t, int64(1), *repo.lastFilter.LocationID)
	assert.Equal(t, "Asia/Jakarta", repo.lastTimezone)

	assert.Equal(t, "2026-10-01", resp.From)
	assert.Equal(t, "2026-10-07", resp.To)
	assert.Equal(t, int64(25000), resp.Totals.Revenue)
	require.Len(t, resp.ByDay, 1)
	assert.Equal(t, "2026-10-01", resp.ByDay[0].Date)
}

func TestRevenue_InvalidRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"bad from", "01-10-2026", "2026-10-07"},
		{"bad to", "2026-10-01", ""},
		{"from after to", "2026-10-08", "2026-10-07"},
		{"range too long", "2026-01-01", "2026-03-01"},
	}

	s := NewService(&fakeRepo{}, &readOnlyTx{}, time.UTC, 31, nopLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Revenue(context.Background(), &models.RevenueRequest{From: tt.from, To: tt.to})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRevenue_SingleDay(t *testing.T) {
	s := NewService(&fakeRepo{}, &readOnlyTx{}, time.UTC, 1, nopLogger{})

	_, err := s.Revenue(context.Background(), &models.RevenueRequest{From: "2026-10-01", To: "2026-10-01"})
	assert.NoError(t, err)
}

func TestAnalytics(t *testing.T) {
	repo := &fakeRepo{}
	tz := jakarta(t)
	s := NewService(repo, &readOnlyTx{}, tz, 31, nopLogger{})
	// 20:00 UTC = 03:00 следующего дня по Джакарте
	s.timeProvider = fixedTime{t: time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)}

	resp := s.Analytics(context.Background())

	assert.Equal(t, int64(40), resp.Slots)
	assert.Equal(t, int64(10), resp.ActiveSessions)
	assert.InDelta(t, 25.0, resp.OccupancyRate, 0.001)
	assert.Equal(t, int64(30000), resp.RevenueToday)
	assert.Equal(t, int64(7), resp.BookingsByLocation["MALL"])
	assert.Equal(t, int64(0), resp.BookingsByLocation["BANDARA"])

	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, tz), repo.todayFrom)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, tz), repo.todayTo)
}

func TestAnalytics_CounterFailureDegradesToZero(t *testing.T) {
	s := NewService(&fakeRepo{failSlots: true}, &readOnlyTx{}, time.UTC, 31, nopLogger{})

	resp := s.Analytics(context.Background())

	assert.Equal(t, int64(0), resp.Slots)
	assert.Equal(t, int64(2), resp.Locations)
	assert.Equal(t, 0.0, resp.OccupancyRate)
}

func TestRevenue_ReadsInsideReadOnlyTransaction(t *testing.T) {
	tx := &readOnlyTx{}
	s := NewService(&fakeRepo{}, tx, time.UTC, 31, nopLogger{})

	_, err := s.Revenue(context.Background(), &models.RevenueRequest{From: "2026-10-01", To: "2026-10-07"})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
}

func TestRevenue_TransactionFailure(t *testing.T) {
	s := NewService(&fakeRepo{}, &readOnlyTx{err: errors.New("begin failed")}, time.UTC, 31, nopLogger{})

	_, err := s.Revenue(context.Background(), &models.RevenueRequest{From: "2026-10-01", To: "2026-10-07"})

	assert.ErrorIs(t, err, ErrInternal)
}
