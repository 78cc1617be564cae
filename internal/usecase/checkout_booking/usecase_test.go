package checkout_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

const rate = 5000

type fakeRepo struct {
	mu        sync.Mutex
	bookings  map[int64]*domain.Booking
	completes int
	err       error
	onGet     func()
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.onGet != nil {
		r.onGet()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) Complete(_ context.Context, id int64, exit time.Time, price int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bookings[id]
	b.Status = domain.StatusCompleted
	b.ActualExitTime = &exit
	b.TotalPrice = price
	r.completes++
	return nil
}

// serialTx выполняет транзакции по очереди, как блокировка строки бронирования
type serialTx struct{ mu sync.Mutex }

func (t *serialTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopMetrics struct{}

func (nopMetrics) Checkout() {}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(h, m int) time.Time {
	return time.Date(2026, 10, 15, h, m, 0, 0, time.UTC)
}

func newTestUseCase(repo *fakeRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, &serialTx{}, rate, nopMetrics{}, nopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func TestExecute_RecomputesPriceFromActualTime(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, UserID: 7, Status: domain.StatusActive, EntryTime: at(10, 0), EstimatedExitTime: at(11, 0), TotalPrice: rate},
	}}

	resp, err := newTestUseCase(repo, at(12, 20)).Execute(context.Background(), &Request{UserID: 7, BookingID: 1})

	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, int64(3*rate), resp.TotalPrice)
	assert.Equal(t, at(12, 20), resp.ActualExitTime)
}

// lockClock отдает время до и после получения блокировки бронирования
type lockClock struct {
	locked        bool
	before, after time.Time
}

func (c *lockClock) Now() time.Time {
	if c.locked {
		return c.after
	}
	return c.before
}

func TestExecute_ExitTimeTakenAfterLock(t *testing.T) {
	clock := &lockClock{before: at(12, 0), after: at(13, 30)}
	repo := &fakeRepo{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, UserID: 7, Status: domain.StatusActive, EntryTime: at(10, 0), EstimatedExitTime: at(11, 0)},
		},
		onGet: func() { clock.locked = true },
	}
	uc := NewUseCase(repo, &serialTx{}, rate, nopMetrics{}, nopLogger{})
	uc.timeProvider = clock

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 1})

	require.NoError(t, err)
	assert.Equal(t, at(13, 30), resp.ActualExitTime)
	assert.Equal(t, int64(4*rate), resp.TotalPrice)
}

func TestExecute_MinimumOneHour(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, UserID: 7, Status: domain.StatusActive, EntryTime: at(10, 0), EstimatedExitTime: at(13, 0)},
	}}

	resp, err := newTestUseCase(repo, at(10, 15)).Execute(context.Background(), &Request{UserID: 7, BookingID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(rate), resp.TotalPrice)
}

func TestExecute_UpcomingWithPassedEntryIsCheckedOut(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, UserID: 7, Status: domain.StatusUpcoming, EntryTime: at(10, 0), EstimatedExitTime: at(12, 0)},
	}}

	_, err := newTestUseCase(repo, at(11, 0)).Execute(context.Background(), &Request{UserID: 7, BookingID: 1})
	assert.NoError(t, err)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		userID  int64
		now     time.Time
	}{
		{name: "other user", booking: &domain.Booking{ID: 1, UserID: 8, Status: domain.StatusActive, EntryTime: at(10, 0), EstimatedExitTime: at(12, 0)}, userID: 7, now: at(11, 0)},
		{name: "still upcoming", booking: &domain.Booking{ID: 1, UserID: 7, Status: domain.StatusUpcoming, EntryTime: at(14, 0), EstimatedExitTime: at(15, 0)}, userID: 7, now: at(11, 0)},
		{name: "completed", booking: &domain.Booking{ID: 1, UserID: 7, Status: domain.StatusCompleted, EntryTime: at(10, 0), EstimatedExitTime: at(12, 0)}, userID: 7, now: at(11, 0)},
		{name: "cancelled", booking: &domain.Booking{ID: 1, UserID: 7, Status: domain.StatusCancelled, EntryTime: at(10, 0), EstimatedExitTime: at(12, 0)}, userID: 7, now: at(11, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{bookings: map[int64]*domain.Booking{1: tt.booking}}
			_, err := newTestUseCase(repo, tt.now).Execute(context.Background(), &Request{UserID: tt.userID, BookingID: 1})
			assert.ErrorIs(t, err, ErrBookingNotFound)
			assert.Zero(t, repo.completes)
		})
	}

	_, err := newTestUseCase(&fakeRepo{bookings: map[int64]*domain.Booking{}}, at(11, 0)).
		Execute(context.Background(), &Request{UserID: 7, BookingID: 99})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = newTestUseCase(&fakeRepo{}, at(11, 0)).Execute(context.Background(), &Request{UserID: 0, BookingID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = newTestUseCase(&fakeRepo{err: bookingRepo.ErrLockConflict}, at(11, 0)).
		Execute(context.Background(), &Request{UserID: 7, BookingID: 1})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = newTestUseCase(&fakeRepo{err: errors.New("db down")}, at(11, 0)).
		Execute(context.Background(), &Request{UserID: 7, BookingID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_DoubleCheckoutChargesOnce(t *testing.T) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, UserID: 7, Status: domain.StatusActive, EntryTime: at(10, 0), EstimatedExitTime: at(12, 0)},
	}}
	uc := newTestUseCase(repo, at(11, 30))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 1})
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrBookingNotFound)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, repo.completes)
}
