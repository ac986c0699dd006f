package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/memorygame/internal/dependencies/clock"
	"github.com/mcoot/memorygame/internal/dependencies/ids"
	"github.com/mcoot/memorygame/internal/dependencies/random"
	"github.com/mcoot/memorygame/internal/dependencies/scheduler"
	"github.com/mcoot/memorygame/internal/services/auth"
	"github.com/mcoot/memorygame/internal/services/game"
	"github.com/mcoot/memorygame/internal/services/session"
	"github.com/mcoot/memorygame/internal/services/shuffle"
	"github.com/mcoot/memorygame/internal/storage"
	"github.com/mcoot/memorygame/internal/storage/memory"
	redisstorage "github.com/mcoot/memorygame/internal/storage/redis"
	"github.com/mcoot/memorygame/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	AuthService *auth.Service
	Shuffler    game.Shuffler
	HubManager  *sse.HubManager
	Sessions    *session.Manager
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// SessionConfig holds the game rules and idle eviction (optional)
	// Zero fields fall back to session.DefaultConfig()
	SessionConfig session.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DealSeed, when non-zero, deals every game from a seeded generator
	DealSeed uint64
}

// dependencies are the replaceable collaborators an App is built from
type dependencies struct {
	store    storage.Storage
	clock    clock.Clock
	ids      ids.Generator
	shuffler game.Shuffler
	newTimer func() scheduler.Timer
	delayer  scheduler.Delayer
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	deps := dependencies{
		store:    store,
		clock:    clock.New(),
		ids:      ids.New(),
		shuffler: shuffle.New(random.FromSeed(cfg.DealSeed)),
		newTimer: func() scheduler.Timer { return scheduler.NewTimer() },
		delayer:  scheduler.NewDelayer(),
	}

	return newWithDependencies(deps, cfg.AuthConfig, cfg.SessionConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(deps dependencies, authCfg auth.Config, sessionCfg session.Config, logger *slog.Logger) *App {
	// Use default auth config if not provided
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	if sessionCfg.IdleTTL == 0 {
		sessionCfg.IdleTTL = session.DefaultConfig().IdleTTL
	}

	// Create services
	authService := auth.New(deps.store, deps.clock, deps.ids, authCfg)
	hubManager := sse.NewHubManager(logger)
	sessions := session.New(session.Dependencies{
		Storage:   deps.store,
		Renderers: hubManager,
		Shuffler:  deps.shuffler,
		NewTimer:  deps.newTimer,
		Delayer:   deps.delayer,
		IDs:       deps.ids,
		Clock:     deps.clock,
		Logger:    logger,
	}, sessionCfg)

	return &App{
		Storage:     deps.store,
		Clock:       deps.clock,
		IDs:         deps.ids,
		AuthService: authService,
		Shuffler:    deps.shuffler,
		HubManager:  hubManager,
		Sessions:    sessions,
	}
}

// Shutdown stops every live game and disconnects its viewers, then closes storage
func (a *App) Shutdown() error {
	a.Sessions.Shutdown()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
