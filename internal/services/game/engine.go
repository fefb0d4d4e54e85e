package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gesturelabs/gestris/internal/dependencies/clock"
	"github.com/gesturelabs/gestris/internal/dependencies/random"
	"github.com/gesturelabs/gestris/internal/model"
	"github.com/gesturelabs/gestris/internal/services/board"
)

// State is a read-only view of an engine, handed to listeners and the API
// layer after every transition
type State struct {
	SessionID model.SessionID
	Cols      int
	Rows      int
	Cells     [][]model.Color
	Score     int
	HighScore int
	GameOver  bool
	Paused    bool

	// Current is nil before the first spawn
	Current      *model.PieceState
	CurrentColor model.Color

	// GhostRow is the row the current piece would land on, or -1 when
	// there is no current piece
	GhostRow int

	NextPiece model.PieceType
}

// Engine is the per-session game state machine. Every transition is
// serialized by its mutex; gesture events, gravity ticks, and render reads
// all marshal through it, so no two may interleave against the shared
// board and piece state.
type Engine struct {
	mu sync.Mutex

	id     model.SessionID
	cfg    Config
	board  *model.Board
	rules  board.ServiceInterface
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	current   *model.Piece
	next      model.PieceType
	score     int
	highScore int
	gameOver  bool
	paused    bool

	// Independent cooldown gates, compared against the injected clock
	lastLock     time.Time
	lastHardDrop time.Time
	lastRotate   time.Time
	lastMove     time.Time

	// Last received pointer position, kept only for zone gating
	pointerX float64

	// stopGravity is non-nil while the gravity goroutine runs
	stopGravity chan struct{}

	// highScoreDirty marks a new high awaiting listener notification
	highScoreDirty bool

	onState     func(State)
	onHighScore func(int)
}

// NewEngine creates a paused engine with an empty board, no current piece,
// and a pre-rolled next piece. Start performs the first spawn.
func NewEngine(
	id model.SessionID,
	cols, rows int,
	rules board.ServiceInterface,
	cfg Config,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Engine {
	e := &Engine{
		id:     id,
		cfg:    cfg,
		board:  model.NewBoard(cols, rows),
		rules:  rules,
		clock:  clk,
		random: rnd,
		logger: logger.With(slog.String("session_id", string(id))),
		paused: true,
	}
	e.next = e.rollPiece()
	return e
}

// OnState registers a listener invoked after every state-changing
// transition. Set once at wiring time, before the engine starts.
func (e *Engine) OnState(fn func(State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onState = fn
}

// OnHighScore registers a listener invoked whenever the high score
// increases, used for persistence
func (e *Engine) OnHighScore(fn func(int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onHighScore = fn
}

// SetHighScore seeds the high score from external persistence. It never
// lowers the current value.
func (e *Engine) SetHighScore(score int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if score > e.highScore {
		e.highScore = score
	}
}

// Start spawns the first piece if none is active, clears the paused flag,
// and enables the gravity clock. A no-op once the game is over.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.gameOver {
		e.mu.Unlock()
		return
	}
	if e.current == nil {
		e.spawnLocked()
	}
	e.paused = false
	e.startGravityLocked()
	e.finishLocked()
}

// Pause sets the paused flag and suspends the gravity clock. No tick fires
// after Pause returns: the flag is set under the mutex every tick checks.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.paused = true
	e.stopGravityLocked()
	e.finishLocked()
}

// Reset clears the board, score, flags, piece, and cooldown timers, rolls
// a fresh next piece, and stops the gravity clock. The high score survives.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.board.Clear()
	e.score = 0
	e.gameOver = false
	e.paused = true
	e.current = nil
	e.next = e.rollPiece()
	e.lastLock = time.Time{}
	e.lastHardDrop = time.Time{}
	e.lastRotate = time.Time{}
	e.lastMove = time.Time{}
	e.stopGravityLocked()
	e.finishLocked()
}

// Close stops the gravity clock. Used on session teardown and server
// shutdown; the engine is not usable afterwards beyond reads.
func (e *Engine) Close() {
	e.mu.Lock()
	e.stopGravityLocked()
	e.mu.Unlock()
}

// Tick performs one gravity evaluation. The gravity goroutine calls it on
// a fixed period; tests drive it directly.
func (e *Engine) Tick() {
	e.mu.Lock()
	if e.paused || e.gameOver {
		e.mu.Unlock()
		return
	}

	if e.current == nil {
		e.spawnLocked()
		e.finishLocked()
		return
	}

	// Slow fall: gravity holds off until the drop cooldown has elapsed
	// since the last lock
	if !e.lastLock.IsZero() && e.clock.Since(e.lastLock) < e.cfg.DropCooldown {
		e.mu.Unlock()
		return
	}

	if e.rules.CanMove(e.board, e.current, 0, 1) {
		e.current.MoveDown()
	} else {
		e.lockAndRespawnLocked()
	}
	e.finishLocked()
}

// PointerMoved handles a pointer-position event from the gesture adapter.
// The x position is normalized to [0, 1]; pointing reports whether the
// tracked finger is extended.
func (e *Engine) PointerMoved(x float64, pointing bool) {
	e.mu.Lock()
	e.pointerX = x

	if e.paused || e.gameOver || e.current == nil || !pointing {
		e.mu.Unlock()
		return
	}
	if !e.lastMove.IsZero() && e.clock.Since(e.lastMove) < e.cfg.MoveCooldown {
		e.mu.Unlock()
		return
	}

	switch {
	case x < e.cfg.LeftZone:
		if e.rules.CanMove(e.board, e.current, -1, 0) {
			e.current.MoveLeft()
			e.lastMove = e.clock.Now()
			e.finishLocked()
			return
		}
	case x > e.cfg.RightZone:
		if e.rules.CanMove(e.board, e.current, 1, 0) {
			e.current.MoveRight()
			e.lastMove = e.clock.Now()
			e.finishLocked()
			return
		}
	}
	// Dead zone or blocked move: nothing stamped, nothing to announce
	e.mu.Unlock()
}

// Rotate turns the current piece one quarter clockwise. A rotation into a
// colliding pose is reverted and charges no cooldown, so it may be retried
// immediately; the cooldown timestamp is stamped only on success.
func (e *Engine) Rotate() {
	e.mu.Lock()
	if e.paused || e.gameOver || e.current == nil {
		e.mu.Unlock()
		return
	}
	if !e.lastRotate.IsZero() && e.clock.Since(e.lastRotate) < e.cfg.RotateCooldown {
		e.mu.Unlock()
		return
	}

	e.current.Rotate()
	if e.rules.IsCollision(e.board, e.current) {
		e.current.RotateBack()
		e.mu.Unlock()
		return
	}

	e.lastRotate = e.clock.Now()
	e.finishLocked()
}

// HardDrop sends the current piece straight to its landing row and locks
// it, following the same lock-clear-respawn path as gravity
func (e *Engine) HardDrop() {
	e.mu.Lock()
	if e.paused || e.gameOver || e.current == nil {
		e.mu.Unlock()
		return
	}
	if !e.lastHardDrop.IsZero() && e.clock.Since(e.lastHardDrop) < e.cfg.HardDropCooldown {
		e.mu.Unlock()
		return
	}

	e.current.Y = e.rules.DropRow(e.board, e.current)
	e.lockAndRespawnLocked()
	e.lastHardDrop = e.clock.Now()
	e.finishLocked()
}

// State returns a read-only view of the engine
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Snapshot serializes the full engine state for persistence
func (e *Engine) Snapshot() *model.GameSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := &model.GameSnapshot{
		SessionID: e.id,
		Cols:      e.board.Cols,
		Rows:      e.board.Rows,
		Cells:     e.board.Flatten(),
		Score:     e.score,
		HighScore: e.highScore,
		GameOver:  e.gameOver,
		Paused:    e.paused,
		NextPiece: e.next,
		SavedAt:   e.clock.Now(),
	}
	if e.current != nil {
		snapshot.CurrentPiece = &model.PieceState{
			Type:     e.current.Type,
			Rotation: e.current.Rotation,
			X:        e.current.X,
			Y:        e.current.Y,
		}
	}
	return snapshot
}

// Restore replaces the engine's state with a validated snapshot. The whole
// restore is rejected on validation failure, with no field applied. The
// gravity clock resumes if the restored state was neither paused nor over.
func (e *Engine) Restore(snapshot *model.GameSnapshot) error {
	e.mu.Lock()
	if err := snapshot.Validate(e.board.Cols, e.board.Rows); err != nil {
		e.mu.Unlock()
		return err
	}

	e.board = model.NewBoardFromFlat(snapshot.Cols, snapshot.Rows, snapshot.Cells)
	e.score = snapshot.Score
	if snapshot.HighScore > e.highScore {
		e.highScore = snapshot.HighScore
	}
	e.gameOver = snapshot.GameOver
	e.paused = snapshot.Paused
	e.next = snapshot.NextPiece
	e.current = nil
	if p := snapshot.CurrentPiece; p != nil {
		e.current = &model.Piece{Type: p.Type, Rotation: p.Rotation, X: p.X, Y: p.Y}
	}

	if !e.paused && !e.gameOver {
		e.startGravityLocked()
	} else {
		e.stopGravityLocked()
	}
	e.finishLocked()
	return nil
}

// spawnLocked activates the pre-rolled next piece and rolls a new one
func (e *Engine) spawnLocked() {
	e.current = model.SpawnPiece(e.next, e.board.Cols)
	e.next = e.rollPiece()
}

// lockAndRespawnLocked runs the shared lock path: commit the piece, clear
// completed rows, spawn the next piece, and detect game over. The lock
// timestamp is stamped here and only here.
func (e *Engine) lockAndRespawnLocked() {
	e.rules.Lock(e.board, e.current)
	cleared, delta := e.rules.ClearCompletedRows(e.board)
	if delta > 0 {
		e.score += delta
		if e.score > e.highScore {
			e.highScore = e.score
			e.highScoreDirty = true
		}
		e.logger.Debug("rows cleared",
			slog.Int("rows", cleared),
			slog.Int("score", e.score),
		)
	}

	e.spawnLocked()
	if e.rules.IsCollision(e.board, e.current) {
		e.gameOver = true
		e.stopGravityLocked()
		e.logger.Info("game over", slog.Int("score", e.score))
	}

	e.lastLock = e.clock.Now()
}

func (e *Engine) rollPiece() model.PieceType {
	return model.AllPieceTypes[e.random.Intn(len(model.AllPieceTypes))]
}

func (e *Engine) startGravityLocked() {
	if e.stopGravity != nil {
		return
	}
	stop := make(chan struct{})
	e.stopGravity = stop
	go e.runGravity(stop)
}

func (e *Engine) stopGravityLocked() {
	if e.stopGravity != nil {
		close(e.stopGravity)
		e.stopGravity = nil
	}
}

// runGravity drives Tick on a fixed period until stopped. Real wall-clock
// ticking; Tick itself re-checks the paused flag under the mutex, so a
// tick racing Pause mutates nothing.
func (e *Engine) runGravity(stop <-chan struct{}) {
	ticker := time.NewTicker(e.cfg.GravityInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.Tick()
		case <-stop:
			return
		}
	}
}

func (e *Engine) stateLocked() State {
	st := State{
		SessionID: e.id,
		Cols:      e.board.Cols,
		Rows:      e.board.Rows,
		Cells:     e.board.Clone().Cells,
		Score:     e.score,
		HighScore: e.highScore,
		GameOver:  e.gameOver,
		Paused:    e.paused,
		GhostRow:  -1,
		NextPiece: e.next,
	}
	if e.current != nil {
		st.Current = &model.PieceState{
			Type:     e.current.Type,
			Rotation: e.current.Rotation,
			X:        e.current.X,
			Y:        e.current.Y,
		}
		st.CurrentColor = e.current.Color()
		st.GhostRow = e.rules.DropRow(e.board, e.current)
	}
	return st
}

// finishLocked snapshots the state, releases the mutex, and notifies the
// listeners. Listeners run outside the mutex so they may do I/O or call
// back into the engine. Callers must hold the mutex and must not touch
// state after.
func (e *Engine) finishLocked() {
	stateListener := e.onState
	var st State
	if stateListener != nil {
		st = e.stateLocked()
	}

	highScoreListener := e.onHighScore
	highScore := e.highScore
	notifyHighScore := e.highScoreDirty && highScoreListener != nil
	e.highScoreDirty = false

	e.mu.Unlock()

	if notifyHighScore {
		highScoreListener(highScore)
	}
	if stateListener != nil {
		stateListener(st)
	}
}
