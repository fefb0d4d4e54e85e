package memory

import (
	"context"
	"sync"

	"github.com/gesturelabs/gestris/internal/model"
	"github.com/gesturelabs/gestris/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	snapshots map[model.SessionID]*model.GameSnapshot

	highScore    int
	highScoreSet bool
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		snapshots: make(map[model.SessionID]*model.GameSnapshot),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Snapshot operations

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *model.GameSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.SessionID] = snapshot
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context, id model.SessionID) (*model.GameSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[id]
	if !ok {
		return nil, model.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	return nil
}

// High score operations

func (s *Storage) GetHighScore(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.highScoreSet {
		return 0, model.ErrHighScoreNotFound
	}
	return s.highScore, nil
}

func (s *Storage) SaveHighScore(ctx context.Context, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highScore = score
	s.highScoreSet = true
	return nil
}
