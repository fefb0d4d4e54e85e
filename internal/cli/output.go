package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameState:
		o.printGameState(v)
	case SessionList:
		o.printSessionList(v)
	case Snapshot:
		o.printSnapshot(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Piece response type (matches API)
type Piece struct {
	Type     string   `json:"type"`
	Color    string   `json:"color"`
	Rotation int      `json:"rotation"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Shape    [][]bool `json:"shape"`
}

// GameState response type
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

// SessionSummary response type
type SessionSummary struct {
	SessionID string `json:"session_id"`
	Cols      int    `json:"cols"`
	Rows      int    `json:"rows"`
	Score     int    `json:"score"`
	HighScore int    `json:"high_score"`
	GameOver  bool   `json:"game_over"`
	Paused    bool   `json:"paused"`
}

// SessionList response type
type SessionList struct {
	Sessions []SessionSummary `json:"sessions"`
}

// Snapshot response type
type Snapshot struct {
	SessionID string `json:"session_id"`
	Cols      int    `json:"cols"`
	Rows      int    `json:"rows"`
	Score     int    `json:"score"`
	HighScore int    `json:"high_score"`
	GameOver  bool   `json:"game_over"`
	Paused    bool   `json:"paused"`
	NextPiece string `json:"next_piece"`
	SavedAt   string `json:"saved_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Session: %s\n", g.SessionID)
	fmt.Printf("Score: %d (high: %d)\n", g.Score, g.HighScore)

	status := "playing"
	if g.GameOver {
		status = "game over"
	} else if g.Paused {
		status = "paused"
	}
	fmt.Printf("Status: %s\n", status)

	if g.NextPiece != "" {
		fmt.Printf("Next: %s\n", g.NextPiece)
	}

	fmt.Println()
	o.printBoard(g)
}

// printBoard renders the grid with locked cells as color initials, the
// active piece as its color initial, and the ghost landing cells as "*"
func (o *Output) printBoard(g GameState) {
	rows := make([][]string, g.Rows)
	for row := 0; row < g.Rows; row++ {
		rows[row] = make([]string, g.Cols)
		for col := 0; col < g.Cols; col++ {
			if cell := g.Cells[row][col]; cell != "" {
				rows[row][col] = cellInitial(cell)
			} else {
				rows[row][col] = "."
			}
		}
	}

	overlayPiece := func(p *Piece, atY int, marker string) {
		for i := range p.Shape {
			for j := range p.Shape[i] {
				if !p.Shape[i][j] {
					continue
				}
				row := atY + i
				col := p.X + j
				if row >= 0 && row < g.Rows && col >= 0 && col < g.Cols {
					rows[row][col] = marker
				}
			}
		}
	}

	if g.Current != nil {
		if g.GhostRow != nil && *g.GhostRow != g.Current.Y {
			overlayPiece(g.Current, *g.GhostRow, "*")
		}
		overlayPiece(g.Current, g.Current.Y, cellInitial(g.Current.Color))
	}

	border := "+" + strings.Repeat("-", g.Cols*2+1) + "+"
	fmt.Println(border)
	for row := 0; row < g.Rows; row++ {
		fmt.Printf("| %s |\n", strings.Join(rows[row], " "))
	}
	fmt.Println(border)
}

// cellInitial maps a color name to its single-character board marker
func cellInitial(color string) string {
	if color == "" {
		return "."
	}
	return strings.ToUpper(color[:1])
}

func (o *Output) printSessionList(l SessionList) {
	if len(l.Sessions) == 0 {
		fmt.Println("No sessions")
		return
	}

	fmt.Printf("Sessions (%d):\n", len(l.Sessions))
	for _, s := range l.Sessions {
		status := "playing"
		if s.GameOver {
			status = "game over"
		} else if s.Paused {
			status = "paused"
		}
		fmt.Printf("  - %s %dx%d score=%d high=%d [%s]\n",
			s.SessionID, s.Cols, s.Rows, s.Score, s.HighScore, status)
	}
}

func (o *Output) printSnapshot(s Snapshot) {
	fmt.Printf("Snapshot for session %s\n", s.SessionID)
	fmt.Printf("Grid: %dx%d\n", s.Cols, s.Rows)
	fmt.Printf("Score: %d (high: %d)\n", s.Score, s.HighScore)
	fmt.Printf("Saved: %s\n", s.SavedAt)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
