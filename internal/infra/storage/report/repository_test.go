package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func TestRevenueWhere(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 8, 0, 0, 0, 0, time.UTC)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings b").
		Where(revenueWhere(domain.RevenueFilter{From: from, To: to, LocationID: ptr.Ptr(int64(7))})).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COUNT(*) FROM bookings b WHERE (b.status = $1 AND b.actual_exit_time >= $2 AND b.actual_exit_time < $3 AND b.location_id = $4)",
		query)
	assert.Equal(t, []interface{}{domain.StatusCompleted, from, to, int64(7)}, args)
}
