package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidDisplaySize = errors.New("invalid display size")

	// Snapshot errors
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")

	// High score errors
	ErrHighScoreNotFound = errors.New("high score not found")
)
