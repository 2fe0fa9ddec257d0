package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "16M", cfg.Server.MaxBodySize)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver())
	assert.Equal(t, "site.db", cfg.Database.SQLitePath)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.False(t, cfg.NotificationsEnabled())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "portfolio", cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORTFOLIO_PRIMARY__ENV", "production")
	t.Setenv("PORTFOLIO_SERVER__PORT", "8080")
	t.Setenv("PORTFOLIO_SERVER__READ_TIMEOUT", "15")
	t.Setenv("PORTFOLIO_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("PORTFOLIO_REDIS__ADDRESS", "localhost:6379")
	t.Setenv("PORTFOLIO_INTEGRATION__RESEND_API_KEY", "re_test")
	t.Setenv("PORTFOLIO_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("PORTFOLIO_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")
	t.Setenv(DatabaseURLEnv, "postgres://u:p@db:5432/site")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver())
	assert.True(t, cfg.NotificationsEnabled())
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.True(t, cfg.Observability.IsProduction())
	// untouched defaults survive a partial override
	assert.Equal(t, 30, cfg.Server.WriteTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv("PORTFOLIO_OBSERVABILITY__LOGGING__LEVEL", "verbose")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown storage backend", func(t *testing.T) {
		t.Setenv("PORTFOLIO_STORAGE__BACKEND", "ftp")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("incomplete minio settings", func(t *testing.T) {
		t.Setenv("PORTFOLIO_STORAGE__BACKEND", "minio")
		t.Setenv("PORTFOLIO_STORAGE__MINIO__ENDPOINT", "localhost:9000")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("PORTFOLIO_SERVER__READ_TIMEOUT"))
	assert.Equal(t, "storage.minio.access_key", envKey("PORTFOLIO_STORAGE__MINIO__ACCESS_KEY"))
}

func TestEnvValue(t *testing.T) {
	key, value := envValue("PORTFOLIO_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	assert.Equal(t, "server.cors_allowed_origins", key)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, value)

	key, value = envValue("PORTFOLIO_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "database")
	assert.Equal(t, "observability.health_checks.checks", key)
	assert.Equal(t, []string{"database"}, value)

	// scalars keep their commas
	_, value = envValue("PORTFOLIO_INTEGRATION__EMAIL_FROM", "Site, Inc <a@x.com>")
	assert.Equal(t, "Site, Inc <a@x.com>", value)
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "error"
	assert.Equal(t, "error", c.GetLogLevel())
}
