package response

import (
	"time"

	"github.com/gesturelabs/gestris/internal/model"
	"github.com/gesturelabs/gestris/internal/services/game"
)

// Piece represents the active piece's pose in API responses
type Piece struct {
	Type     string   `json:"type"`
	Color    string   `json:"color"`
	Rotation int      `json:"rotation"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Shape    [][]bool `json:"shape"`
}

// GameState represents a session's full renderable state
type GameState struct {
	SessionID string     `json:"session_id"`
	Cols      int        `json:"cols"`
	Rows      int        `json:"rows"`
	Cells     [][]string `json:"cells"`
	Score     int        `json:"score"`
	HighScore int        `json:"high_score"`
	GameOver  bool       `json:"game_over"`
	Paused    bool       `json:"paused"`
	Current   *Piece     `json:"current"`
	GhostRow  *int       `json:"ghost_row"`
	NextPiece string     `json:"next_piece"`
}

// GameStateFromEngine converts an engine state view to a response GameState.
// Empty cells are represented as empty strings.
func GameStateFromEngine(st game.State) GameState {
	cells := make([][]string, st.Rows)
	for row := 0; row < st.Rows; row++ {
		cells[row] = make([]string, st.Cols)
		for col := 0; col < st.Cols; col++ {
			if st.Cells[row][col] != model.ColorNone {
				cells[row][col] = string(st.Cells[row][col])
			}
		}
	}

	var current *Piece
	var ghostRow *int
	if st.Current != nil {
		p := model.Piece{Type: st.Current.Type, Rotation: st.Current.Rotation}
		current = &Piece{
			Type:     string(st.Current.Type),
			Color:    string(st.CurrentColor),
			Rotation: st.Current.Rotation,
			X:        st.Current.X,
			Y:        st.Current.Y,
			Shape:    p.Shape(),
		}
		if st.GhostRow >= 0 {
			g := st.GhostRow
			ghostRow = &g
		}
	}

	return GameState{
		SessionID: string(st.SessionID),
		Cols:      st.Cols,
		Rows:      st.Rows,
		Cells:     cells,
		Score:     st.Score,
		HighScore: st.HighScore,
		GameOver:  st.GameOver,
		Paused:    st.Paused,
		Current:   current,
		GhostRow:  ghostRow,
		NextPiece: string(st.NextPiece),
	}
}

// SessionSummary represents a session in list responses
type SessionSummary struct {
	SessionID string `json:"session_id"`
	Cols      int    `json:"cols"`
	Rows      int    `json:"rows"`
	Score     int    `json:"score"`
	HighScore int    `json:"high_score"`
	GameOver  bool   `json:"game_over"`
	Paused    bool   `json:"paused"`
}

// SessionSummaryFromEngine converts an engine state view to a summary
func SessionSummaryFromEngine(st game.State) SessionSummary {
	return SessionSummary{
		SessionID: string(st.SessionID),
		Cols:      st.Cols,
		Rows:      st.Rows,
		Score:     st.Score,
		HighScore: st.HighScore,
		GameOver:  st.GameOver,
		Paused:    st.Paused,
	}
}

// SessionList is the response for listing sessions
type SessionList struct {
	Sessions []SessionSummary `json:"sessions"`
}

// Snapshot describes a saved snapshot without its cell data
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Cols      int       `json:"cols"`
	Rows      int       `json:"rows"`
	Score     int       `json:"score"`
	HighScore int       `json:"high_score"`
	GameOver  bool      `json:"game_over"`
	Paused    bool      `json:"paused"`
	NextPiece string    `json:"next_piece"`
	SavedAt   time.Time `json:"saved_at"`
}

// SnapshotFromModel converts a model.GameSnapshot
func SnapshotFromModel(s *model.GameSnapshot) Snapshot {
	return Snapshot{
		SessionID: string(s.SessionID),
		Cols:      s.Cols,
		Rows:      s.Rows,
		Score:     s.Score,
		HighScore: s.HighScore,
		GameOver:  s.GameOver,
		Paused:    s.Paused,
		NextPiece: string(s.NextPiece),
		SavedAt:   s.SavedAt,
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
