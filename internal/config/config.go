package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Pricing   PricingConfig   `toml:"pricing"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Reports   ReportsConfig   `toml:"reports"`
	Admin     AdminConfig     `toml:"admin"`
	CORS      CORSConfig      `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TicketSecret  string `toml:"ticket_secret"`
	SessionTTL    int    `toml:"session_ttl"` // минуты
	CookieName    string `toml:"cookie_name"`
	CookieSecure  bool   `toml:"cookie_secure"`
	BcryptCost    int    `toml:"bcrypt_cost"`
	MinPasswordLn int    `toml:"min_password_length"`
}

type PricingConfig struct {
	HourlyRate int64 `toml:"hourly_rate"` // рупии за час
}

type RateLimitConfig struct {
	Enabled    bool `toml:"enabled"`
	Limit      int  `toml:"limit"`    // запросов за interval
	Interval   int  `toml:"interval"` // секунды
	MaxClients int  `toml:"max_clients"`
	TrustProxy bool `toml:"trust_proxy"` // брать адрес клиента из X-Forwarded-For
}

type SchedulerConfig struct {
	Enabled          bool `toml:"enabled"`
	ActivationPeriod int  `toml:"activation_period"` // секунды
}

type ReportsConfig struct {
	MaxRangeDays int    `toml:"max_range_days"`
	Timezone     string `toml:"timezone"`
}

type AdminConfig struct {
	Name     string `toml:"name"`
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DSN строка подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Load читает конфигурацию из TOML файла
// Перед этим подгружается .env (если есть), переменные окружения переопределяют секреты из файла
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret (or JWT_SECRET) is required")
	}
	if c.Pricing.HourlyRate <= 0 {
		return errors.New("config: pricing.hourly_rate must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("config: database.host and database.dbname are required")
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("TICKET_SECRET"); v != "" {
		c.Auth.TicketSecret = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid HTTP_PORT %q: %w", v, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "parking_service"
	}

	if c.Auth.TicketSecret == "" {
		c.Auth.TicketSecret = c.Auth.JWTSecret
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 24 * 60
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "parking_session"
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Auth.MinPasswordLn == 0 {
		c.Auth.MinPasswordLn = 6
	}

	if c.RateLimit.Limit == 0 {
		c.RateLimit.Limit = 60
	}
	if c.RateLimit.Interval == 0 {
		c.RateLimit.Interval = 60
	}
	if c.RateLimit.MaxClients == 0 {
		c.RateLimit.MaxClients = 500
	}

	if c.Scheduler.ActivationPeriod == 0 {
		c.Scheduler.ActivationPeriod = 60
	}

	if c.Reports.MaxRangeDays == 0 {
		c.Reports.MaxRangeDays = 366
	}
	if c.Reports.Timezone == "" {
		c.Reports.Timezone = "Asia/Jakarta"
	}
}
