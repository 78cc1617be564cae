package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2026, 10, 15, h, m, 0, 0, time.UTC)
}

func TestCalculatePrice(t *testing.T) {
	const rate = 5000

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int64
	}{
		{name: "90 minutes billed as two hours", start: t0, end: t0.Add(90 * time.Minute), want: 2 * rate},
		{name: "exact hour", start: t0, end: t0.Add(time.Hour), want: rate},
		{name: "ten minutes billed as one hour", start: t0, end: t0.Add(10 * time.Minute), want: rate},
		{name: "one second over", start: t0, end: t0.Add(2*time.Hour + time.Second), want: 3 * rate},
		{name: "zero duration still minimum", start: t0, end: t0, want: rate},
		{name: "negative duration still minimum", start: t0, end: t0.Add(-time.Hour), want: rate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePrice(tt.start, tt.end, rate))
		})
	}
}

func TestTimeWindow_Validate(t *testing.T) {
	assert.NoError(t, TimeWindow{Start: at(10, 0), End: at(11, 0)}.Validate())
	assert.ErrorIs(t, TimeWindow{Start: at(10, 0), End: at(10, 0)}.Validate(), ErrInvalidWindow)
	assert.ErrorIs(t, TimeWindow{Start: at(11, 0), End: at(10, 0)}.Validate(), ErrInvalidWindow)
	assert.ErrorIs(t, TimeWindow{End: at(10, 0)}.Validate(), ErrInvalidWindow)

	assert.ErrorIs(t, TimeWindow{Start: at(8, 0), End: at(9, 0)}.ValidateAt(at(9, 30)), ErrWindowInPast)
	assert.NoError(t, TimeWindow{Start: at(8, 0), End: at(10, 0)}.ValidateAt(at(9, 30)))
}

func TestTimeWindow_Overlaps(t *testing.T) {
	existing := TimeWindow{Start: at(10, 0), End: at(12, 0)}

	tests := []struct {
		name string
		w    TimeWindow
		want bool
	}{
		{name: "partial overlap at end", w: TimeWindow{Start: at(11, 0), End: at(13, 0)}, want: true},
		{name: "partial overlap at start", w: TimeWindow{Start: at(9, 0), End: at(10, 30)}, want: true},
		{name: "contained", w: TimeWindow{Start: at(10, 30), End: at(11, 0)}, want: true},
		{name: "containing", w: TimeWindow{Start: at(9, 0), End: at(13, 0)}, want: true},
		{name: "adjacent after", w: TimeWindow{Start: at(12, 0), End: at(14, 0)}, want: false},
		{name: "adjacent before", w: TimeWindow{Start: at(8, 0), End: at(10, 0)}, want: false},
		{name: "fully before", w: TimeWindow{Start: at(6, 0), End: at(7, 0)}, want: false},
		{name: "fully after", w: TimeWindow{Start: at(15, 0), End: at(16, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.w))
			assert.Equal(t, tt.want, tt.w.Overlaps(existing))
		})
	}
}

func TestBooking_EffectiveStatus(t *testing.T) {
	b := &Booking{Status: StatusUpcoming, EntryTime: at(10, 0)}

	assert.Equal(t, StatusUpcoming, b.EffectiveStatus(at(9, 59)))
	assert.Equal(t, StatusActive, b.EffectiveStatus(at(10, 0)))
	assert.Equal(t, StatusActive, b.EffectiveStatus(at(11, 0)))

	completed := &Booking{Status: StatusCompleted, EntryTime: at(10, 0)}
	assert.Equal(t, StatusCompleted, completed.EffectiveStatus(at(11, 0)))
}

func TestBooking_CanCheckout(t *testing.T) {
	b := &Booking{UserID: 1, Status: StatusActive, EntryTime: at(10, 0)}
	assert.True(t, b.CanCheckout(1, at(11, 0)))
	assert.False(t, b.CanCheckout(2, at(11, 0)), "not the owner")

	upcoming := &Booking{UserID: 1, Status: StatusUpcoming, EntryTime: at(12, 0)}
	assert.False(t, upcoming.CanCheckout(1, at(11, 0)))
	assert.True(t, upcoming.CanCheckout(1, at(12, 30)), "entry time passed")

	done := &Booking{UserID: 1, Status: StatusCompleted, EntryTime: at(10, 0)}
	assert.False(t, done.CanCheckout(1, at(11, 0)))
}

func TestBooking_BlocksSlot(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusUpcoming}).BlocksSlot())
	assert.True(t, (&Booking{Status: StatusActive}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusCompleted}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusCancelled}).BlocksSlot())
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusUpcoming, InitialStatus(at(12, 0), at(10, 0)))
	assert.Equal(t, StatusActive, InitialStatus(at(10, 0), at(10, 0)))
	assert.Equal(t, StatusActive, InitialStatus(at(9, 0), at(10, 0)))
}

func TestSpotCodes(t *testing.T) {
	assert.Equal(t, "M-001", SpotCode(LocationMall, 1))
	assert.Equal(t, "B-014", SpotCode(LocationBandara, 14))
	assert.Equal(t, "G-120", SpotCode(LocationGedung, 120))

	assert.Equal(t, []string{"M-004", "M-005"}, SpotCodes(LocationMall, 4, 5))
	assert.Nil(t, SpotCodes(LocationMall, 5, 4))
}

func TestParseLocationType(t *testing.T) {
	lt, ok := ParseLocationType(" bandara ")
	assert.True(t, ok)
	assert.Equal(t, LocationBandara, lt)

	_, ok = ParseLocationType("STADIUM")
	assert.False(t, ok)
}

func TestNewPage(t *testing.T) {
	p := NewPage(0, 0)
	assert.Equal(t, Page{Page: DefaultPage, Limit: DefaultLimit}, p)
	assert.Equal(t, uint64(0), p.Offset())

	p = NewPage(3, 500)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, uint64(200), p.Offset())
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0.0, OccupancyRate(0, 5))
	assert.InDelta(t, 25.0, OccupancyRate(40, 10), 0.001)
}
