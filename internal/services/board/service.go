package board

import (
	"github.com/gesturelabs/gestris/internal/model"
)

// lineScores is the fixed score awarded per number of rows cleared in one
// pass. Counts outside the table score count*100.
var lineScores = map[int]int{
	1: 100,
	2: 300,
	3: 500,
	4: 800,
}

// Service implements the grid rules: collision testing, locking,
// line detection and clearing, and the drop-position computation.
// It is stateless; all state lives in the board and piece passed in.
type Service struct{}

// New creates a new board Service
func New() *Service {
	return &Service{}
}

// CanMove reports whether the piece could shift by (dx, dy) without leaving
// the playfield or overlapping a locked cell. Cells that would land above
// the visible board (row < 0) are only checked against the horizontal
// bounds, so pieces may spawn and rotate partially above the top edge.
func (s *Service) CanMove(b *model.Board, p *model.Piece, dx, dy int) bool {
	shape := p.Shape()
	for i, row := range shape {
		for j, filled := range row {
			if !filled {
				continue
			}
			col := p.X + j + dx
			rowIdx := p.Y + i + dy
			if col < 0 || col >= b.Cols {
				return false
			}
			if rowIdx >= b.Rows {
				return false
			}
			if rowIdx >= 0 && !b.IsEmpty(rowIdx, col) {
				return false
			}
		}
	}
	return true
}

// IsCollision reports whether the piece's current pose is illegal. Used
// immediately after a spawn or rotation.
func (s *Service) IsCollision(b *model.Board, p *model.Piece) bool {
	return !s.CanMove(b, p, 0, 0)
}

// Lock commits the piece's occupied cells into the board, writing its color.
// Cells above the top edge are dropped silently.
func (s *Service) Lock(b *model.Board, p *model.Piece) {
	color := p.Color()
	for i, row := range p.Shape() {
		for j, filled := range row {
			if !filled {
				continue
			}
			rowIdx := p.Y + i
			if rowIdx >= 0 && rowIdx < b.Rows {
				b.Set(rowIdx, p.X+j, color)
			}
		}
	}
}

// CompletedRows returns the indexes of rows with no empty cell, ascending
func (s *Service) CompletedRows(b *model.Board) []int {
	var completed []int
	for row := 0; row < b.Rows; row++ {
		full := true
		for col := 0; col < b.Cols; col++ {
			if b.IsEmpty(row, col) {
				full = false
				break
			}
		}
		if full {
			completed = append(completed, row)
		}
	}
	return completed
}

// ClearCompletedRows removes every complete row and returns the number of
// rows cleared along with the score delta. Rows are collected first, then
// cleared top-most first: each clear shifts only the rows above it, so the
// indexes of completed rows further down stay valid through the pass.
func (s *Service) ClearCompletedRows(b *model.Board) (int, int) {
	completed := s.CompletedRows(b)
	for _, row := range completed {
		s.clearRow(b, row)
	}
	if len(completed) == 0 {
		return 0, 0
	}
	return len(completed), s.ScoreForRows(len(completed))
}

// clearRow removes one row, shifting every row above it down and emptying
// the top row
func (s *Service) clearRow(b *model.Board, row int) {
	for r := row; r > 0; r-- {
		copy(b.Cells[r], b.Cells[r-1])
	}
	for col := 0; col < b.Cols; col++ {
		b.Cells[0][col] = model.ColorNone
	}
}

// ScoreForRows returns the score awarded for clearing the given number of
// rows in a single pass
func (s *Service) ScoreForRows(count int) int {
	if score, ok := lineScores[count]; ok {
		return score
	}
	return count * 100
}

// DropRow returns the lowest row the piece can fall to from its current
// position: the landing row for hard drops and the ghost-piece preview.
func (s *Service) DropRow(b *model.Board, p *model.Piece) int {
	row := p.Y
	for s.CanMove(b, p, 0, row-p.Y+1) {
		row++
	}
	return row
}

// Interface for dependency injection
type ServiceInterface interface {
	CanMove(b *model.Board, p *model.Piece, dx, dy int) bool
	IsCollision(b *model.Board, p *model.Piece) bool
	Lock(b *model.Board, p *model.Piece)
	CompletedRows(b *model.Board) []int
	ClearCompletedRows(b *model.Board) (int, int)
	ScoreForRows(count int) int
	DropRow(b *model.Board, p *model.Piece) int
}

var _ ServiceInterface = (*Service)(nil)
