package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gesturelabs/gestris/internal/dependencies/clock"
	"github.com/gesturelabs/gestris/internal/dependencies/random"
	"github.com/gesturelabs/gestris/internal/model"
	"github.com/gesturelabs/gestris/internal/services/board"
	"github.com/gesturelabs/gestris/internal/services/gesture"
	"github.com/gesturelabs/gestris/internal/storage"
)

// Grid dimension bounds. Columns are fixed at the standard width; rows are
// derived from the client's display aspect ratio.
const (
	gridCols = model.DefaultCols
	minRows  = 10
	maxRows  = 40
)

// sessionIDAlphabet omits visually ambiguous characters
const sessionIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// session pairs an engine with its gesture adapter
type session struct {
	engine   *Engine
	gestures *gesture.Adapter
}

// Controller is the session registry and persistence orchestrator: it
// creates engines, routes input to them, and moves snapshots and the
// shared high score through storage. Engine transitions themselves never
// touch storage; all I/O happens here, outside the engine mutex.
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	engineCfg    Config
	gestureCfg   gesture.Config
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger

	mu       sync.RWMutex
	sessions map[model.SessionID]*session

	// stateListener receives every engine's state changes, for SSE
	stateListener func(State)
}

// NewController creates a new session controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	engineCfg Config,
	gestureCfg gesture.Config,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		engineCfg:    engineCfg,
		gestureCfg:   gestureCfg,
		clock:        clock,
		random:       random,
		logger:       logger,
		sessions:     make(map[model.SessionID]*session),
	}
}

// SetStateListener registers a listener for every session's state changes.
// Must be set at wiring time, before any session exists.
func (c *Controller) SetStateListener(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateListener = fn
}

// CreateSession builds a new paused engine sized from the client's display,
// seeds it with the stored high score, and registers it
func (c *Controller) CreateSession(ctx context.Context, displayWidth, displayHeight int) (State, error) {
	rows, err := deriveRows(displayWidth, displayHeight)
	if err != nil {
		return State{}, err
	}

	highScore, err := c.storage.GetHighScore(ctx)
	if err != nil && !errors.Is(err, model.ErrHighScoreNotFound) {
		return State{}, err
	}

	id := model.SessionID(c.random.String(12, sessionIDAlphabet))

	engine := NewEngine(id, gridCols, rows, c.boardService, c.engineCfg, c.clock, c.random, c.logger)
	engine.SetHighScore(highScore)
	engine.OnHighScore(func(score int) {
		c.persistHighScore(score)
	})

	c.mu.Lock()
	listener := c.stateListener
	c.mu.Unlock()
	if listener != nil {
		engine.OnState(listener)
	}

	adapter := gesture.NewAdapter(engine, c.gestureCfg, c.clock, c.logger.With(slog.String("session_id", string(id))))

	c.mu.Lock()
	c.sessions[id] = &session{engine: engine, gestures: adapter}
	sessionCount := len(c.sessions)
	c.mu.Unlock()

	c.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.Int("rows", rows),
		slog.Int("high_score", highScore),
		slog.Int("session_count", sessionCount),
	)

	return engine.State(), nil
}

// GetState returns a session's current state
func (c *Controller) GetState(id model.SessionID) (State, error) {
	s, err := c.session(id)
	if err != nil {
		return State{}, err
	}
	return s.engine.State(), nil
}

// ListStates returns the state of every active session
func (c *Controller) ListStates() []State {
	c.mu.RLock()
	sessions := make([]*session, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s)
	}
	c.mu.RUnlock()

	states := make([]State, 0, len(sessions))
	for _, s := range sessions {
		states = append(states, s.engine.State())
	}
	return states
}

// Start resumes (or begins) a session's game
func (c *Controller) Start(ctx context.Context, id model.SessionID) (State, error) {
	s, err := c.session(id)
	if err != nil {
		return State{}, err
	}
	s.engine.Start()
	return s.engine.State(), nil
}

// Pause suspends a session's game and persists the high score, since a
// pause is the suspend signal for the device sessions come from
func (c *Controller) Pause(ctx context.Context, id model.SessionID) (State, error) {
	s, err := c.session(id)
	if err != nil {
		return State{}, err
	}
	s.engine.Pause()

	st := s.engine.State()
	if err := c.storage.SaveHighScore(ctx, st.HighScore); err != nil {
		c.logger.Error("failed to persist high score on pause",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
	return st, nil
}

// Reset clears a session's game back to an empty, paused board
func (c *Controller) Reset(ctx context.Context, id model.SessionID) (State, error) {
	s, err := c.session(id)
	if err != nil {
		return State{}, err
	}
	s.engine.Reset()
	return s.engine.State(), nil
}

// PointerMoved routes a pointer event into a session
func (c *Controller) PointerMoved(id model.SessionID, x float64, pointing bool) error {
	s, err := c.session(id)
	if err != nil {
		return err
	}
	s.gestures.PointerMoved(x, pointing)
	return nil
}

// FistGesture routes a fist trigger into a session
func (c *Controller) FistGesture(id model.SessionID) error {
	s, err := c.session(id)
	if err != nil {
		return err
	}
	s.gestures.Fist()
	return nil
}

// TwoFingerGesture routes a two-finger trigger into a session
func (c *Controller) TwoFingerGesture(id model.SessionID) error {
	s, err := c.session(id)
	if err != nil {
		return err
	}
	s.gestures.TwoFinger()
	return nil
}

// SaveSnapshot serializes a session and persists the snapshot
func (c *Controller) SaveSnapshot(ctx context.Context, id model.SessionID) (*model.GameSnapshot, error) {
	s, err := c.session(id)
	if err != nil {
		return nil, err
	}

	snapshot := s.engine.Snapshot()
	if err := c.storage.SaveSnapshot(ctx, snapshot); err != nil {
		c.logger.Error("failed to save snapshot",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("snapshot saved",
		slog.String("session_id", string(id)),
		slog.Int("score", snapshot.Score),
	)
	return snapshot, nil
}

// RestoreSnapshot loads the session's persisted snapshot and applies it
// atomically, resuming the gravity clock if the restored state was not
// paused or over
func (c *Controller) RestoreSnapshot(ctx context.Context, id model.SessionID) (State, error) {
	s, err := c.session(id)
	if err != nil {
		return State{}, err
	}

	snapshot, err := c.storage.GetSnapshot(ctx, id)
	if err != nil {
		return State{}, err
	}

	if err := s.engine.Restore(snapshot); err != nil {
		return State{}, err
	}

	c.logger.Info("snapshot restored",
		slog.String("session_id", string(id)),
		slog.Int("score", snapshot.Score),
		slog.Bool("paused", snapshot.Paused),
	)
	return s.engine.State(), nil
}

// DeleteSession stops a session's engine, drops it from the registry, and
// deletes its stored snapshot
func (c *Controller) DeleteSession(ctx context.Context, id model.SessionID) error {
	c.mu.Lock()
	s, ok := c.sessions[id]
	if ok {
		delete(c.sessions, id)
	}
	c.mu.Unlock()
	if !ok {
		return model.ErrSessionNotFound
	}

	s.engine.Close()

	if err := c.storage.DeleteSnapshot(ctx, id); err != nil {
		c.logger.Error("failed to delete snapshot",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Info("session deleted", slog.String("session_id", string(id)))
	return nil
}

// Close stops every engine's gravity clock, for server shutdown
func (c *Controller) Close() {
	c.mu.Lock()
	sessions := make([]*session, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s)
	}
	c.mu.Unlock()

	for _, s := range sessions {
		s.engine.Close()
	}
	c.logger.Info("all sessions stopped", slog.Int("count", len(sessions)))
}

func (c *Controller) session(id model.SessionID) (*session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s, nil
}

// persistHighScore writes a new high through to storage. Invoked from
// engine listeners outside the engine mutex.
func (c *Controller) persistHighScore(score int) {
	if err := c.storage.SaveHighScore(context.Background(), score); err != nil {
		c.logger.Error("failed to persist high score",
			slog.Int("score", score),
			slog.String("error", err.Error()),
		)
	}
}

// deriveRows maps a display size to a grid height: the standard 10 columns
// scaled by the display aspect ratio. A zero size falls back to the
// standard 20 rows; negative sizes are rejected.
func deriveRows(displayWidth, displayHeight int) (int, error) {
	if displayWidth < 0 || displayHeight < 0 {
		return 0, model.ErrInvalidDisplaySize
	}
	if displayWidth == 0 || displayHeight == 0 {
		return model.DefaultRows, nil
	}

	rows := displayHeight * gridCols / displayWidth
	if rows < minRows {
		rows = minRows
	}
	if rows > maxRows {
		rows = maxRows
	}
	return rows, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context, displayWidth, displayHeight int) (State, error)
	GetState(id model.SessionID) (State, error)
	ListStates() []State
	Start(ctx context.Context, id model.SessionID) (State, error)
	Pause(ctx context.Context, id model.SessionID) (State, error)
	Reset(ctx context.Context, id model.SessionID) (State, error)
	PointerMoved(id model.SessionID, x float64, pointing bool) error
	FistGesture(id model.SessionID) error
	TwoFingerGesture(id model.SessionID) error
	SaveSnapshot(ctx context.Context, id model.SessionID) (*model.GameSnapshot, error)
	RestoreSnapshot(ctx context.Context, id model.SessionID) (State, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	Close()
}

var _ ControllerInterface = (*Controller)(nil)
