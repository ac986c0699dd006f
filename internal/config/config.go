// Package config reads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/memorygame/internal/services/game"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds every server setting
type Config struct {
	Host     string
	Port     int
	LogLevel slog.Level

	StorageType string
	RedisURL    string

	GameDuration    time.Duration
	MismatchDelay   time.Duration
	OverlayDelay    time.Duration
	SessionDuration time.Duration
	IdleTTL         time.Duration

	// DealSeed makes every deal reproducible when non-zero; for demos and debugging
	DealSeed uint64

	StaticDir string
}

// Default returns the settings used when nothing is configured
func Default() Config {
	def := game.DefaultConfig()
	return Config{
		Host:            "",
		Port:            8080,
		LogLevel:        slog.LevelInfo,
		StorageType:     StorageMemory,
		GameDuration:    def.Duration,
		MismatchDelay:   def.MismatchDelay,
		OverlayDelay:    def.OverlayDelay,
		SessionDuration: 24 * time.Hour,
		IdleTTL:         30 * time.Minute,
	}
}

// Addr returns the listen address
func (c Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Game returns the game rules described by the config
func (c Config) Game() game.Config {
	cfg := game.DefaultConfig()
	cfg.Duration = c.GameDuration
	cfg.MismatchDelay = c.MismatchDelay
	cfg.OverlayDelay = c.OverlayDelay
	return cfg
}

// Load reads the given .env files, if present, into the process environment
// and parses it. Variables already set take precedence over the files.
func Load(envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return Parse(os.LookupEnv)
}

// LoadFile parses settings from a .env file alone, ignoring the environment
func LoadFile(path string) (Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

// Parse builds a Config from a variable lookup, starting from Default
func Parse(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	p.str("HOST", &cfg.Host)
	p.integer("PORT", &cfg.Port)
	p.level("LOG_LEVEL", &cfg.LogLevel)
	p.str("STORAGE_TYPE", &cfg.StorageType)
	p.str("REDIS_URL", &cfg.RedisURL)
	p.duration("GAME_DURATION", &cfg.GameDuration)
	p.duration("MISMATCH_DELAY", &cfg.MismatchDelay)
	p.duration("OVERLAY_DELAY", &cfg.OverlayDelay)
	p.duration("SESSION_DURATION", &cfg.SessionDuration)
	p.duration("IDLE_TTL", &cfg.IdleTTL)
	p.uint64("DEAL_SEED", &cfg.DealSeed)
	p.str("STATIC_DIR", &cfg.StaticDir)

	if len(p.errs) > 0 {
		return Config{}, errors.Join(p.errs...)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q", c.StorageType, StorageMemory, StorageRedis)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.GameDuration < time.Second {
		return fmt.Errorf("GAME_DURATION must be at least 1s, got %s", c.GameDuration)
	}
	return nil
}

// parser collects errors while reading variables
type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) integer(key string, dst *int) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func (p *parser) uint64(key string, dst *uint64) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func (p *parser) duration(key string, dst *time.Duration) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = d
}

func (p *parser) level(key string, dst *slog.Level) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	if err := dst.UnmarshalText([]byte(v)); err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
	}
}
