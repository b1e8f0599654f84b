package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DuracionesDesdeEntorno(t *testing.T) {
	t.Setenv("DRAFT_IDLE_TTL", "45m")
	t.Setenv("DRAFT_LOOKUP_TIMEOUT", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.Drafts.IdleTTL)
	assert.Equal(t, 3*time.Second, cfg.Drafts.LookupTimeout)
	assert.Equal(t, time.Minute, cfg.Drafts.SweepInterval)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ExigeSecreto(t *testing.T) {
	cfg := &Config{Drafts: DraftsConfig{LookupTimeout: time.Second, SweepInterval: time.Second}}
	assert.Error(t, cfg.Validate())
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "wineo", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/wineo?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestValidate_ExigeBaseDeDatos(t *testing.T) {
	base := Config{
		JWT:    JWTConfig{Secret: "s"},
		DB:     DBConfig{Host: "localhost", MaxConns: 5, MinConns: 1},
		Drafts: DraftsConfig{LookupTimeout: time.Second, SweepInterval: time.Second},
	}
	require.NoError(t, base.Validate())

	sinHost := base
	sinHost.DB.Host = ""
	assert.ErrorContains(t, sinHost.Validate(), "DB_HOST")

	conURL := sinHost
	conURL.DB.DatabaseURL = "postgres://u@db/wineo"
	assert.NoError(t, conURL.Validate())

	pool := base
	pool.DB.MinConns = 9
	assert.ErrorContains(t, pool.Validate(), "DB_MAX_CONNS")
}

func TestLoad_PoolDesdeEntorno(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int32(40), cfg.DB.MaxConns)
	assert.Equal(t, int32(1), cfg.DB.MinConns)
	assert.Equal(t, 90*time.Second, cfg.DB.MaxConnIdleTime)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
}
