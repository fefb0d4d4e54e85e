package gesture

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gesturelabs/gestris/internal/dependencies/clock"
)

// Target is the set of engine actions the adapter drives
type Target interface {
	PointerMoved(x float64, pointing bool)
	Rotate()
	HardDrop()
}

// Config holds the per-trigger debounce windows
type Config struct {
	FistCooldown      time.Duration
	TwoFingerCooldown time.Duration
}

// DefaultConfig returns the standard debounce windows
func DefaultConfig() Config {
	return Config{
		FistCooldown:      800 * time.Millisecond,
		TwoFingerCooldown: 1500 * time.Millisecond,
	}
}

// Adapter maps raw hand-tracking events onto engine actions. The pointer
// stream passes through unmodified; the two discrete triggers are each
// debounced with their own cooldown before reaching the engine.
//
// The trigger mapping is fixed: fist rotates, two fingers hard-drop.
type Adapter struct {
	target Target
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger

	mu            sync.Mutex
	lastFist      time.Time
	lastTwoFinger time.Time
}

// NewAdapter creates a gesture adapter driving the given target
func NewAdapter(target Target, cfg Config, clk clock.Clock, logger *slog.Logger) *Adapter {
	return &Adapter{
		target: target,
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

// PointerMoved forwards a pointer-position event to the lateral-move
// handler. Called at camera frame rate; the engine owns its own move
// cooldown, so no debounce is applied here.
func (a *Adapter) PointerMoved(x float64, pointing bool) {
	a.target.PointerMoved(x, pointing)
}

// Fist handles a fist trigger: rotate, debounced
func (a *Adapter) Fist() {
	a.mu.Lock()
	if !a.lastFist.IsZero() && a.clock.Since(a.lastFist) < a.cfg.FistCooldown {
		a.mu.Unlock()
		a.logger.Debug("fist gesture debounced")
		return
	}
	a.lastFist = a.clock.Now()
	a.mu.Unlock()

	a.target.Rotate()
}

// TwoFinger handles a two-finger trigger: hard drop, debounced
func (a *Adapter) TwoFinger() {
	a.mu.Lock()
	if !a.lastTwoFinger.IsZero() && a.clock.Since(a.lastTwoFinger) < a.cfg.TwoFingerCooldown {
		a.mu.Unlock()
		a.logger.Debug("two-finger gesture debounced")
		return
	}
	a.lastTwoFinger = a.clock.Now()
	a.mu.Unlock()

	a.target.HardDrop()
}
