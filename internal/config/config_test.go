package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
user = "parking"
password = "from-file"
dbname = "parking"

[auth]
jwt_secret = "file-secret"

[pricing]
hourly_rate = 5000
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "parking_session", cfg.Auth.CookieName)
	assert.Equal(t, "file-secret", cfg.Auth.TicketSecret)
	assert.Equal(t, 60, cfg.RateLimit.Limit)
	assert.Equal(t, 500, cfg.RateLimit.MaxClients)
	assert.Equal(t, int64(5000), cfg.Pricing.HourlyRate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("HTTP_PORT", "7000")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 7000, cfg.Server.HTTPPort)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "abc")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.Error(t, err)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	body := `
[database]
host = "localhost"
dbname = "parking"

[pricing]
hourly_rate = 5000
`
	_, err := Load(writeConfig(t, body))
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "parking", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=parking sslmode=disable", c.DSN())
}
