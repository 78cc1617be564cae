package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type fakeParser struct{}

func (fakeParser) Parse(token string) (int64, domain.Role, error) {
	switch token {
	case "user-token":
		return 7, domain.RoleUser, nil
	case "admin-token":
		return 1, domain.RoleAdmin, nil
	default:
		return 0, "", errors.New("bad token")
	}
}

type fakeLimiter struct{ allowed map[string]int }

func (l *fakeLimiter) Allow(key string) bool {
	if l.allowed[key] <= 0 {
		return false
	}
	l.allowed[key]--
	return true
}

type fakeMetrics struct {
	mu        sync.Mutex
	routes    []string
	statuses  []int
	throttled int
}

func (m *fakeMetrics) ObserveHTTP(_, _, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = append(m.routes, route)
	m.statuses = append(m.statuses, status)
}

func (m *fakeMetrics) Throttled() { m.throttled++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	id, _ := GetUserID(r.Context())
	role, _ := GetUserRole(r.Context())
	w.Header().Set("X-User", string(role))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte{byte('0' + id)})
}

func TestAuth(t *testing.T) {
	h := Auth(fakeParser{}, "parking_session", nopLogger{})(http.HandlerFunc(whoAmI))

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantRole   string
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "parking_session", Value: "user-token"})
		}, http.StatusOK, "USER"},
		{"bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer admin-token")
		}, http.StatusOK, "ADMIN"},
		{"invalid", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer forged")
		}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			tt.setup(r)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantRole, w.Header().Get("X-User"))
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := Auth(fakeParser{}, "s", nopLogger{})(RequireRole(domain.RoleAdmin, nopLogger{})(http.HandlerFunc(whoAmI)))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/analytics", nil)
	r.Header.Set("Authorization", "Bearer user-token")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r.Header.Set("Authorization", "Bearer admin-token")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{allowed: map[string]int{"10.0.0.1": 1, "203.0.113.5": 1}}
	m := &fakeMetrics{}
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	h := RateLimit(limiter, m, false, nopLogger{})(ok)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"code":429,"message":"слишком много запросов, повторите позже"}`, w.Body.String())
	assert.Equal(t, 1, m.throttled)

	// За прокси ключом служит X-Forwarded-For
	proxied := RateLimit(limiter, m, true, nopLogger{})(ok)
	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	w = httptest.NewRecorder()
	proxied.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsMiddleware_RouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m, "parking_service"))
	router.HandleFunc("/api/v1/bookings/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/bookings/42", nil))

	require.Len(t, m.routes, 1)
	assert.Equal(t, "/api/v1/bookings/{id}", m.routes[0])
	assert.Equal(t, http.StatusNotFound, m.statuses[0])
}

func TestRecovery(t *testing.T) {
	h := RequestID(Recovery(nopLogger{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestID_KeepsValidIncoming(t *testing.T) {
	const id = "0b8f6f5e-5a4e-4c59-9a83-0a3b9d6f8e21"
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, id)
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, id, seen)
}
