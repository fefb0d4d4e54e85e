package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// PieceState is the serialized pose of the active piece
type PieceState struct {
	Type     PieceType
	Rotation int
	X        int
	Y        int
}

// GameSnapshot is the full serialized state of a session's engine. It
// round-trips exactly: restoring a snapshot reproduces board contents,
// score, high score, flags, the active piece (or its absence), and the
// next piece type.
type GameSnapshot struct {
	SessionID SessionID
	Cols      int
	Rows      int
	Cells     []Color // Row-major flat grid
	Score     int
	HighScore int
	GameOver  bool
	Paused    bool

	// CurrentPiece is nil when no piece has spawned yet
	CurrentPiece *PieceState
	NextPiece    PieceType

	SavedAt time.Time
}

// Validate checks the snapshot's internal consistency against the target
// grid dimensions. A restore must reject the whole snapshot on any failure
// rather than partially applying it.
func (s *GameSnapshot) Validate(cols, rows int) error {
	if s.Cols != cols || s.Rows != rows {
		return ErrInvalidSnapshot
	}
	if len(s.Cells) != cols*rows {
		return ErrInvalidSnapshot
	}
	for _, c := range s.Cells {
		if c != ColorNone && !c.IsValid() {
			return ErrInvalidSnapshot
		}
	}
	if s.Score < 0 || s.HighScore < 0 {
		return ErrInvalidSnapshot
	}
	if !s.NextPiece.IsValid() {
		return ErrInvalidSnapshot
	}
	if p := s.CurrentPiece; p != nil {
		if !p.Type.IsValid() {
			return ErrInvalidSnapshot
		}
		if p.Rotation < 0 || p.Rotation > 3 {
			return ErrInvalidSnapshot
		}
	}
	return nil
}
