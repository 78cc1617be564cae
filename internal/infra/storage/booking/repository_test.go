package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// stubTx транзакция в контексте; запросы через неё в этих тестах не выполняются
type stubTx struct {
	dbmetrics.DBExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func TestOverlapQuery(t *testing.T) {
	start := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	query, args, err := overlapQuery(3, domain.TimeWindow{Start: start, End: end}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COUNT(*) FROM bookings WHERE slot_id = $1 AND status IN ($2,$3) AND entry_time < $4 AND estimated_exit_time > $5",
		query)
	assert.Equal(t, []interface{}{int64(3), "upcoming", "active", end, start}, args)
}

func TestGetByIDQuery_LocksOnlyInTransaction(t *testing.T) {
	query, args, err := getByIDQuery(context.Background(), 5).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Contains(t, query, "WHERE b.id = $1")
	assert.Equal(t, []interface{}{int64(5)}, args)

	txCtx := dbmetrics.WithTx(context.Background(), stubTx{})
	query, _, err = getByIDQuery(txCtx, 5).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE b.id = $1 FOR UPDATE OF b")
}

func TestStatusCondition(t *testing.T) {
	now := time.Date(2026, 10, 15, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status domain.BookingStatus
		query  string
		args   []interface{}
	}{
		{
			name:   "active includes started upcoming",
			status: domain.StatusActive,
			query:  "SELECT COUNT(*) FROM bookings b WHERE (b.status = $1 OR (b.status = $2 AND b.entry_time <= $3))",
			args:   []interface{}{domain.StatusActive, domain.StatusUpcoming, now},
		},
		{
			name:   "upcoming excludes started",
			status: domain.StatusUpcoming,
			query:  "SELECT COUNT(*) FROM bookings b WHERE (b.status = $1 AND b.entry_time > $2)",
			args:   []interface{}{domain.StatusUpcoming, now},
		},
		{
			name:   "completed matches stored status",
			status: domain.StatusCompleted,
			query:  "SELECT COUNT(*) FROM bookings b WHERE b.status = $1",
			args:   []interface{}{domain.StatusCompleted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := psqlbuilder.Select("COUNT(*)").
				From("bookings b").
				Where(statusCondition(tt.status, now)).
				ToSql()
			require.NoError(t, err)

			assert.Equal(t, tt.query, query)
			assert.Equal(t, tt.args, args)
		})
	}
}
