package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, 60*time.Second, cfg.GameDuration)
	assert.Equal(t, 1200*time.Millisecond, cfg.MismatchDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.OverlayDelay)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(lookupFrom(map[string]string{
		"HOST":             "127.0.0.1",
		"PORT":             "9000",
		"LOG_LEVEL":        "debug",
		"STORAGE_TYPE":     "redis",
		"REDIS_URL":        "redis://cache:6379",
		"GAME_DURATION":    "90s",
		"MISMATCH_DELAY":   "800ms",
		"OVERLAY_DELAY":    "1s",
		"SESSION_DURATION": "2h",
		"IDLE_TTL":         "5m",
		"STATIC_DIR":       "/srv/static",
		"DEAL_SEED":        "42",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, StorageRedis, cfg.StorageType)
	assert.Equal(t, "redis://cache:6379", cfg.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionDuration)
	assert.Equal(t, 5*time.Minute, cfg.IdleTTL)
	assert.Equal(t, "/srv/static", cfg.StaticDir)
	assert.Equal(t, uint64(42), cfg.DealSeed)

	g := cfg.Game()
	assert.Equal(t, 90*time.Second, g.Duration)
	assert.Equal(t, 800*time.Millisecond, g.MismatchDelay)
	assert.Equal(t, time.Second, g.OverlayDelay)
	assert.Len(t, g.Symbols, 8)
}

func TestParseBlankValuesKeepDefaults(t *testing.T) {
	cfg, err := Parse(lookupFrom(map[string]string{"PORT": "  ", "GAME_DURATION": ""}))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 60*time.Second, cfg.GameDuration)
}

func TestParseInvalidValues(t *testing.T) {
	_, err := Parse(lookupFrom(map[string]string{
		"PORT":           "eighty",
		"MISMATCH_DELAY": "soon",
		"LOG_LEVEL":      "loud",
		"DEAL_SEED":      "-1",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEAL_SEED")
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "MISMATCH_DELAY")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		errMsg string
	}{
		{"redis without url", map[string]string{"STORAGE_TYPE": "redis"}, "REDIS_URL"},
		{"unknown storage", map[string]string{"STORAGE_TYPE": "sqlite"}, "STORAGE_TYPE"},
		{"port out of range", map[string]string{"PORT": "70000"}, "PORT"},
		{"sub-second game", map[string]string{"GAME_DURATION": "500ms"}, "GAME_DURATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(lookupFrom(tt.values))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, godotenv.Write(map[string]string{
		"PORT":          "3000",
		"GAME_DURATION": "30s",
	}, path))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.GameDuration)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadEnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OVERLAY_DELAY=2s\n"), 0o600))

	t.Setenv("OVERLAY_DELAY", "750ms")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.OverlayDelay)
}
