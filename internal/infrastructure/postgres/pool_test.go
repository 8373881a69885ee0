package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/pkg/config"
)

func TestNewPoolConfig_TamañoDesdeConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.internal", Port: 5433, User: "app", Password: "secret", DBName: "estoque", SSLMode: "disable",
		MaxConns: 12, MinConns: 3, MaxConnLifetime: 20 * time.Minute, MaxConnIdleTime: 5 * time.Minute,
	}
	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(12), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 20*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host, "el host no se reescribe")
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.NotNil(t, pc.AfterConnect)
}

func TestNewPoolConfig_DatabaseURLYDefaults(t *testing.T) {
	pc, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@pg.example.com:5432/estoque?sslmode=disable"})
	require.NoError(t, err)

	assert.Equal(t, "pg.example.com", pc.ConnConfig.Host)
	assert.Equal(t, "estoque", pc.ConnConfig.Database)
	assert.Positive(t, pc.MaxConns, "sin MaxConns queda el default de pgxpool")
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}
