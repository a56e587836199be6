package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusnet/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.User = "campus"
	cfg.Database.Password = "secret"
	cfg.Database.DBName = "campusnet"
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 4
	cfg.Database.ConnMaxLifetime = "30m"
	return cfg
}

func TestPoolConfig(t *testing.T) {
	pc, err := poolConfig(testConfig())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "campusnet", pc.ConnConfig.Database)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(4), pc.MinConns)
	assert.Equal(t, 30*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 15*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, connectTimeout, pc.ConnConfig.ConnectTimeout)
}

func TestPoolConfigCapsIdleConnections(t *testing.T) {
	cfg := testConfig()
	cfg.Database.MaxIdleConns = 50

	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, pc.MaxConns, pc.MinConns)
}

func TestPoolConfigRejectsBadLifetime(t *testing.T) {
	cfg := testConfig()
	cfg.Database.ConnMaxLifetime = "forever"

	_, err := poolConfig(cfg)
	assert.Error(t, err)
}
