package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	err     error
	lastReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{
		ID:                10,
		UserID:            req.UserID,
		SlotID:            req.SlotID,
		SpotCode:          "M-001",
		EntryTime:         req.EntryTime,
		EstimatedExitTime: req.EstimatedExitTime,
		TotalPrice:        10000,
		Status:            "upcoming",
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"slotId":3,"entryTime":"2026-10-16T12:00:00Z","estimatedExitTime":"2026-10-16T14:00:00Z"}`

func doRequest(h *Handler, body string, authenticated bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if authenticated {
		r = r.WithContext(middleware.WithUser(r.Context(), 7, domain.RoleUser))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	w := doRequest(NewHandler(uc, nopLogger{}), validBody, true)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"spotCode":"M-001"`)
	assert.Contains(t, w.Body.String(), `"status":"upcoming"`)

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(7), uc.lastReq.UserID, "user comes from the session, not the body")
	assert.Equal(t, time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC), uc.lastReq.EntryTime.UTC())
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{createBooking.ErrSlotNotFound, http.StatusNotFound},
		{createBooking.ErrInvalidWindow, http.StatusBadRequest},
		{fmt.Errorf("%w: db down", createBooking.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := doRequest(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}), validBody, true)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), fmt.Sprintf(`"code":%d`, tt.wantStatus))
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	assert.Equal(t, http.StatusUnauthorized, doRequest(h, validBody, false).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, `{"slotId":3}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, `{"slotId":"x"}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, `{"slotId":3,"entryTime":"tomorrow","estimatedExitTime":"later"}`, true).Code)
}
