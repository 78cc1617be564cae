package middleware

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// TokenParser проверяет токен сессии
type TokenParser interface {
	Parse(token string) (int64, domain.Role, error)
}

// Limiter ограничитель запросов по ключу клиента
type Limiter interface {
	Allow(key string) bool
}

// MetricsCollector HTTP и доменные метрики
type MetricsCollector interface {
	ObserveHTTP(service, method, route string, status int, duration time.Duration)
	Throttled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
