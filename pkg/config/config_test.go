package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "estoque-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 60*time.Second, cfg.Redis.PermissionCacheTTL)
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_URL el cache queda deshabilitado")
	assert.True(t, cfg.Telemetry.MetricsEnabled)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.DB.MaxConnIdleTime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PERMISSION_CACHE_TTL_SECONDS", "15")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("DB_MAX_CONNS", "8")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 15*time.Second, cfg.Redis.PermissionCacheTTL)
	assert.False(t, cfg.Telemetry.MetricsEnabled)
	assert.Equal(t, 8, cfg.DB.MaxConns)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "estoque", SSLMode: "disable"}
	dsn := c.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aw%2Frd")
	assert.Equal(t, dsn, c.ConnectionString())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
