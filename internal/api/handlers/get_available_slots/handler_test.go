package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	locationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/location"
	getAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
)

type fakeLocations struct{}

func (fakeLocations) GetByID(_ context.Context, id int64) (*domain.Location, error) {
	if id != 1 {
		return nil, locationRepo.ErrLocationNotFound
	}
	return &domain.Location{ID: 1, Name: "Grand Mall", Type: domain.LocationMall, TotalSlots: 2}, nil
}

type fakeSlots struct {
	err error
}

func (f fakeSlots) ListAvailability(_ context.Context, locationID int64, _ domain.TimeWindow) ([]*domain.SlotAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.SlotAvailability{
		{Slot: domain.Slot{ID: 10, LocationID: locationID, SpotCode: "M-001"}, Status: domain.SlotAvailable},
		{Slot: domain.Slot{ID: 11, LocationID: locationID, SpotCode: "M-002"}, Status: domain.SlotBooked},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestHandler(slots fakeSlots) *Handler {
	return NewHandler(getAvailableSlots.NewUseCase(fakeLocations{}, slots, nopLogger{}), nopLogger{})
}

func doRequest(h *Handler, locationID, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/locations/"+locationID+"/availability", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"locationId": locationID})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

const validBody = `{"startTime":"2026-10-16T10:00:00Z","endTime":"2026-10-16T12:00:00Z"}`

func TestHandle_ReturnsSlotStatuses(t *testing.T) {
	w := doRequest(newTestHandler(fakeSlots{}), "1", validBody)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		LocationID     int64 `json:"locationId"`
		TotalSlots     int   `json:"totalSlots"`
		AvailableSlots int   `json:"availableSlots"`
		Slots          []struct {
			ID       int64  `json:"id"`
			SpotCode string `json:"spot_code"`
			Status   string `json:"status"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, int64(1), body.LocationID)
	assert.Equal(t, 2, body.TotalSlots)
	assert.Equal(t, 1, body.AvailableSlots)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "M-001", body.Slots[0].SpotCode)
	assert.Equal(t, "AVAILABLE", body.Slots[0].Status)
	assert.Equal(t, "BOOKED", body.Slots[1].Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		locationID string
		body       string
		slots      fakeSlots
		wantStatus int
	}{
		{"malformed body", "1", `{"startTime":`, fakeSlots{}, http.StatusBadRequest},
		{"missing end", "1", `{"startTime":"2026-10-16T10:00:00Z"}`, fakeSlots{}, http.StatusBadRequest},
		{"end equals start", "1", `{"startTime":"2026-10-16T10:00:00Z","endTime":"2026-10-16T10:00:00Z"}`, fakeSlots{}, http.StatusBadRequest},
		{"end before start", "1", `{"startTime":"2026-10-16T12:00:00Z","endTime":"2026-10-16T10:00:00Z"}`, fakeSlots{}, http.StatusBadRequest},
		{"invalid location id", "x", validBody, fakeSlots{}, http.StatusBadRequest},
		{"unknown location", "2", validBody, fakeSlots{}, http.StatusNotFound},
		{"storage failure", "1", validBody, fakeSlots{err: errors.New("db down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(newTestHandler(tt.slots), tt.locationID, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
