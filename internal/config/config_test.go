package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "database.ssl_mode", envKey("COFFEE_DATABASE__SSL_MODE"))
	assert.Equal(t, "primary.env", envKey("COFFEE_PRIMARY__ENV"))
	assert.Equal(t, "observability.logging.slow_query_threshold", envKey("COFFEE_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD"))
}

func TestLoadConfig_SQLite(t *testing.T) {
	t.Setenv("COFFEE_PRIMARY__ENV", "test")
	t.Setenv("COFFEE_DATABASE__DRIVER", "sqlite")
	t.Setenv("COFFEE_DATABASE__PATH", ":memory:")
	t.Setenv("COFFEE_OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv("COFFEE_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.Path)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "coffee-demo", cfg.Observability.ServiceName)
	assert.Equal(t, "test", cfg.Observability.Environment)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "console", cfg.Observability.Logging.Format, "default survives partial override")
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.True(t, cfg.Observability.HealthChecks.Enabled)
}

func TestLoadConfig_PostgresDefaults(t *testing.T) {
	t.Setenv("COFFEE_DATABASE__USER", "coffee")
	t.Setenv("COFFEE_DATABASE__PASSWORD", "pa:ss@word")
	t.Setenv("COFFEE_DATABASE__NAME", "coffee")
	t.Setenv("COFFEE_DATABASE__PORT", "6543")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "pa:ss@word", cfg.Database.Password)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, "local", cfg.Primary.Env)
}

func TestLoadConfig_PostgresRequiresUser(t *testing.T) {
	t.Setenv("COFFEE_DATABASE__NAME", "coffee")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User")
}

func TestLoadConfig_SQLiteRequiresPath(t *testing.T) {
	t.Setenv("COFFEE_DATABASE__DRIVER", "sqlite")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Path")
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("COFFEE_DATABASE__DRIVER", "mysql")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Driver")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	t.Setenv("COFFEE_DATABASE__DRIVER", "sqlite")
	t.Setenv("COFFEE_DATABASE__PATH", ":memory:")
	t.Setenv("COFFEE_OBSERVABILITY__LOGGING__LEVEL", "loud")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestObservabilityConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "empty service", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: "service_name"},
		{name: "bad format", mutate: func(c *ObservabilityConfig) { c.Logging.Format = "xml" }, wantErr: "logging format"},
		{name: "negative threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, wantErr: "slow_query_threshold"},
		{name: "short timeout", mutate: func(c *ObservabilityConfig) { c.HealthChecks.Timeout = time.Millisecond }, wantErr: "timeout"},
		{name: "short timeout when disabled", mutate: func(c *ObservabilityConfig) {
			c.HealthChecks.Enabled = false
			c.HealthChecks.Timeout = 0
		}},
		{name: "unknown check", mutate: func(c *ObservabilityConfig) { c.HealthChecks.Checks = []string{"redis"} }, wantErr: "unknown health check"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := DefaultObservabilityConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	t.Parallel()

	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())
	assert.True(t, c.IsProduction())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
	assert.False(t, c.NewRelicEnabled())
}
