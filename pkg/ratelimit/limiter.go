package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Значения по умолчанию
const (
	DefaultLimit      = 60
	DefaultInterval   = time.Minute
	DefaultMaxClients = 500
)

// Config параметры ограничителя
type Config struct {
	Limit      int           // Запросов на клиента за Interval
	Interval   time.Duration // Окно, после которого запись клиента истекает
	MaxClients int           // Максимум одновременно отслеживаемых клиентов (LRU)
}

// Limiter ограничитель запросов по ключу клиента
// Хранит ограниченное число клиентов: при переполнении вытесняется самый давний,
// запись клиента истекает через Interval после создания
type Limiter struct {
	mu      sync.Mutex
	clients *expirable.LRU[string, *rate.Limiter]
	rate    rate.Limit
	burst   int
}

// New создает ограничитель. Создаётся один раз при старте процесса
func New(cfg Config) *Limiter {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = DefaultMaxClients
	}

	return &Limiter{
		clients: expirable.NewLRU[string, *rate.Limiter](cfg.MaxClients, nil, cfg.Interval),
		rate:    rate.Every(cfg.Interval / time.Duration(cfg.Limit)),
		burst:   cfg.Limit,
	}
}

// Allow расходует один токен клиента key, false - лимит исчерпан
func (l *Limiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// Len количество отслеживаемых клиентов
func (l *Limiter) Len() int {
	return l.clients.Len()
}

func (l *Limiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.clients.Get(key); ok {
		return lim
	}

	lim := rate.NewLimiter(l.rate, l.burst)
	l.clients.Add(key, lim)
	return lim
}
