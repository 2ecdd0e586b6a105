package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("UPLOAD_DELAY_MS", "0")
	t.Setenv("LIST_DELAY_MS", "25")
	t.Setenv("AUTH_DEMO_MODE", "false")
	t.Setenv("JWT_TTL", "1h")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.False(t, cfg.MinIO.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Duration(0), cfg.Latency.Upload)
	assert.Equal(t, 25*time.Millisecond, cfg.Latency.List)
	assert.Equal(t, time.Second, cfg.Latency.Login)
	assert.False(t, cfg.Auth.DemoMode)
	assert.Equal(t, "password123", cfg.Auth.DemoPassword)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{TimeZone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.TimeZone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvMillis(t *testing.T) {
	key := "TEST_MS_VAR"
	defer os.Unsetenv(key)

	os.Setenv(key, "150")
	assert.Equal(t, 150*time.Millisecond, getEnvMillis(key, time.Second))

	os.Setenv(key, "-5")
	assert.Equal(t, time.Second, getEnvMillis(key, time.Second))

	os.Setenv(key, "abc")
	assert.Equal(t, time.Second, getEnvMillis(key, time.Second))
}
