package storage

import (
	"context"

	"github.com/gesturelabs/gestris/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Snapshot operations
	SaveSnapshot(ctx context.Context, snapshot *model.GameSnapshot) error
	GetSnapshot(ctx context.Context, id model.SessionID) (*model.GameSnapshot, error)
	DeleteSnapshot(ctx context.Context, id model.SessionID) error

	// High score operations. A single global value: the service runs on
	// behalf of one installation, so every session shares it.
	GetHighScore(ctx context.Context) (int, error)
	SaveHighScore(ctx context.Context, score int) error
}
