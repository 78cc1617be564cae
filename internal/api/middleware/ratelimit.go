package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

// RateLimit ограничивает число запросов с одного адреса
// При trustProxy адрес берется из первого значения X-Forwarded-For
func RateLimit(limiter Limiter, m MetricsCollector, trustProxy bool, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r, trustProxy)

			if !limiter.Allow(client) {
				logger.Warn("%s %s - Rate limit exceeded: client=%s", r.Method, r.URL.Path, client)
				if m != nil {
					m.Throttled()
				}
				w.Header().Set("Retry-After", "1")
				handlers.RespondTooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
