package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gesturelabs/gestris/internal/model"
	"github.com/gesturelabs/gestris/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Snapshot operations

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *model.GameSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, snapshotKey(snapshot.SessionID), data, s.cfg.SnapshotTTL).Err()
}

func (s *Storage) GetSnapshot(ctx context.Context, id model.SessionID) (*model.GameSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, err
	}

	var snapshot model.GameSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context, id model.SessionID) error {
	return s.client.Del(ctx, snapshotKey(id)).Err()
}

// High score operations

func (s *Storage) GetHighScore(ctx context.Context) (int, error) {
	value, err := s.client.Get(ctx, highScoreKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, model.ErrHighScoreNotFound
		}
		return 0, err
	}

	score, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return score, nil
}

func (s *Storage) SaveHighScore(ctx context.Context, score int) error {
	// No TTL: the high score outlives every session
	return s.client.Set(ctx, highScoreKey(), strconv.Itoa(score), 0).Err()
}
