package game

import "time"

// Config holds the engine's timing and pointer-zone settings
type Config struct {
	// GravityInterval is the period of the automatic descent tick
	GravityInterval time.Duration

	// DropCooldown gates gravity after a lock: the freshly spawned piece
	// does not start falling until it has elapsed. This decouples the
	// tick rate from the effective drop rate.
	DropCooldown time.Duration

	// MoveCooldown is the minimum delay between pointer-driven lateral moves
	MoveCooldown time.Duration

	// RotateCooldown is the minimum delay between successful rotations
	RotateCooldown time.Duration

	// HardDropCooldown is the minimum delay between hard drops
	HardDropCooldown time.Duration

	// LeftZone and RightZone split the normalized pointer range into
	// move-left, dead, and move-right bands. Comparisons are strict, so a
	// position exactly on a threshold falls in the dead zone.
	LeftZone  float64
	RightZone float64
}

// DefaultConfig returns the standard engine timing
func DefaultConfig() Config {
	return Config{
		GravityInterval:  500 * time.Millisecond,
		DropCooldown:     500 * time.Millisecond,
		MoveCooldown:     200 * time.Millisecond,
		RotateCooldown:   500 * time.Millisecond,
		HardDropCooldown: time.Second,
		LeftZone:         0.4,
		RightZone:        0.6,
	}
}
