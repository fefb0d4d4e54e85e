package model

// Standard playfield dimensions, used when no display size is supplied
const (
	DefaultCols = 10
	DefaultRows = 20
)

// Board is the playfield grid. Each cell holds ColorNone or the color of the
// piece that locked there. Only locking and row-clearing mutate it.
type Board struct {
	Cols  int
	Rows  int
	Cells [][]Color // Row-major: Cells[row][col]
}

// NewBoard creates an empty board of the given dimensions
func NewBoard(cols, rows int) *Board {
	cells := make([][]Color, rows)
	for i := range cells {
		cells[i] = make([]Color, cols)
	}
	return &Board{
		Cols:  cols,
		Rows:  rows,
		Cells: cells,
	}
}

// NewBoardFromFlat creates a board from a row-major flat cell slice.
// The slice length must equal cols*rows; callers validate before building.
func NewBoardFromFlat(cols, rows int, flat []Color) *Board {
	b := NewBoard(cols, rows)
	for i, c := range flat {
		b.Cells[i/cols][i%cols] = c
	}
	return b
}

// Get returns the color at the given cell, or ColorNone if out of bounds
func (b *Board) Get(row, col int) Color {
	if !b.InBounds(row, col) {
		return ColorNone
	}
	return b.Cells[row][col]
}

// Set writes a color at the given cell; out-of-bounds writes are dropped
func (b *Board) Set(row, col int, c Color) {
	if b.InBounds(row, col) {
		b.Cells[row][col] = c
	}
}

// IsEmpty returns true if the cell is within bounds and unoccupied
func (b *Board) IsEmpty(row, col int) bool {
	return b.Get(row, col) == ColorNone
}

// InBounds returns true if the cell coordinates are within the grid
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

// Clear empties every cell
func (b *Board) Clear() {
	for row := range b.Cells {
		for col := range b.Cells[row] {
			b.Cells[row][col] = ColorNone
		}
	}
}

// Flatten returns the cells as a row-major flat slice, for snapshots
func (b *Board) Flatten() []Color {
	flat := make([]Color, 0, b.Cols*b.Rows)
	for _, row := range b.Cells {
		flat = append(flat, row...)
	}
	return flat
}

// Clone returns an independent deep copy of the board
func (b *Board) Clone() *Board {
	c := NewBoard(b.Cols, b.Rows)
	for row := range b.Cells {
		copy(c.Cells[row], b.Cells[row])
	}
	return c
}
