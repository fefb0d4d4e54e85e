package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gesturelabs/gestris/internal/dependencies/clock"
	"github.com/gesturelabs/gestris/internal/dependencies/random"
	"github.com/gesturelabs/gestris/internal/services/board"
	"github.com/gesturelabs/gestris/internal/services/game"
	"github.com/gesturelabs/gestris/internal/services/gesture"
	"github.com/gesturelabs/gestris/internal/storage"
	"github.com/gesturelabs/gestris/internal/storage/memory"
	redisstorage "github.com/gesturelabs/gestris/internal/storage/redis"
	"github.com/gesturelabs/gestris/internal/web/sse"
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
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService   *board.Service
	GameController *game.Controller
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// GameConfig holds engine tuning (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// GestureConfig holds gesture debounce tuning (optional)
	// If zero value, defaults to gesture.DefaultConfig()
	GestureConfig gesture.Config
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
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
	clk := clock.New()
	rnd := random.New()

	// Fill in default tuning where not provided
	gameCfg := cfg.GameConfig
	if gameCfg.GravityInterval == 0 {
		gameCfg = game.DefaultConfig()
	}
	gestureCfg := cfg.GestureConfig
	if gestureCfg.FistCooldown == 0 {
		gestureCfg = gesture.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, gameCfg, gestureCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	gameCfg game.Config,
	gestureCfg gesture.Config,
	logger *slog.Logger,
) *App {
	// Create services
	boardService := board.New()
	gameController := game.NewController(store, boardService, gameCfg, gestureCfg, clk, rnd, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	// Every engine transition streams out to connected SSE clients
	gameController.SetStateListener(broadcaster.BroadcastState)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		BoardService:   boardService,
		GameController: gameController,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}
