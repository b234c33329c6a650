package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MINES_DEVELOPMENT", "1")
	t.Setenv("MINES_TOKEN_SECRET", "")

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.Development)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 10000, cfg.MaxCells)
	assert.Len(t, cfg.TokenSecret, 64)
	assert.Empty(t, cfg.WSOrigins)
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("MINES_DEVELOPMENT", "0")
	t.Setenv("MINES_TOKEN_SECRET", "")

	_, err := Load(NewViper())
	assert.ErrorContains(t, err, "MINES_TOKEN_SECRET")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MINES_ADDR", ":9090")
	t.Setenv("MINES_BASE_PATH", "/api/")
	t.Setenv("MINES_SESSION_TTL", "10m")
	t.Setenv("MINES_TOKEN_SECRET", "hunter2")
	t.Setenv("MINES_WS_ORIGINS", "https://a.example https://b.example")

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "hunter2", cfg.TokenSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.WSOrigins)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MINES_ADDR", ":9090")
	t.Setenv("MINES_TOKEN_SECRET", "hunter2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", ":8080", "")
	require.NoError(t, flags.Parse([]string{"--addr", ":7070"}))

	v := NewViper()
	require.NoError(t, BindFlags(v, flags))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("MINES_TOKEN_SECRET", "hunter2")
	t.Setenv("MINES_SWEEP_INTERVAL", "0s")

	_, err := Load(NewViper())
	assert.Error(t, err)
}

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset("Hard")
	require.NoError(t, err)
	assert.Equal(t, Preset{Name: "hard", Rows: 30, Cols: 16, Mines: 99}, p)

	_, err = LookupPreset("nightmare")
	assert.ErrorContains(t, err, "'easy', 'medium', 'hard'")
}
