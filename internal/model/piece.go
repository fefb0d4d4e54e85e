package model

// PieceType identifies one of the seven tetromino shapes
type PieceType string

const (
	PieceI PieceType = "I"
	PieceJ PieceType = "J"
	PieceL PieceType = "L"
	PieceO PieceType = "O"
	PieceS PieceType = "S"
	PieceT PieceType = "T"
	PieceZ PieceType = "Z"
)

// AllPieceTypes lists every piece type in a fixed order, used for random rolls
var AllPieceTypes = []PieceType{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}

// IsValid returns true if the piece type is one of the seven known shapes
func (t PieceType) IsValid() bool {
	_, ok := baseShapes[t]
	return ok
}

// Color identifies the rendered color of a piece or a locked board cell
type Color string

const (
	// ColorNone is the empty-cell sentinel
	ColorNone   Color = ""
	ColorCyan   Color = "cyan"
	ColorBlue   Color = "blue"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorRed    Color = "red"
)

// IsValid returns true if the color is one of the seven piece colors
func (c Color) IsValid() bool {
	switch c {
	case ColorCyan, ColorBlue, ColorOrange, ColorYellow, ColorGreen, ColorPurple, ColorRed:
		return true
	}
	return false
}

// pieceColors is the fixed piece-type to color mapping
var pieceColors = map[PieceType]Color{
	PieceI: ColorCyan,
	PieceJ: ColorBlue,
	PieceL: ColorOrange,
	PieceO: ColorYellow,
	PieceS: ColorGreen,
	PieceT: ColorPurple,
	PieceZ: ColorRed,
}

// baseShapes holds each piece's occupancy matrix at spawn orientation.
// I and O need a 4x4 matrix; the others fit in 3x3. O is centered so the
// clockwise transform maps it onto itself.
var baseShapes = map[PieceType][][]bool{
	PieceI: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	PieceJ: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	PieceL: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
	PieceO: {
		{false, false, false, false},
		{false, true, true, false},
		{false, true, true, false},
		{false, false, false, false},
	},
	PieceS: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	PieceT: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
	PieceZ: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
}

// BaseShape returns a copy of the spawn-orientation shape matrix for a type
func BaseShape(t PieceType) [][]bool {
	return copyShape(baseShapes[t])
}

// Piece is an active falling tetromino: its type, rotation step, and the
// board position of its bounding box's top-left corner
type Piece struct {
	Type     PieceType
	Rotation int // number of clockwise quarter turns, mod 4
	X        int // column of the bounding box's left edge
	Y        int // row of the bounding box's top edge; may be negative near spawn
}

// NewPiece creates a piece of the given type at the given position
func NewPiece(t PieceType, x, y int) *Piece {
	return &Piece{Type: t, X: x, Y: y}
}

// SpawnPiece creates a piece at its spawn pose: horizontally centered, top row
func SpawnPiece(t PieceType, cols int) *Piece {
	return NewPiece(t, (cols-len(baseShapes[t]))/2, 0)
}

// Size returns the piece's matrix dimension (3 or 4)
func (p *Piece) Size() int {
	return len(baseShapes[p.Type])
}

// Color returns the piece's fixed color
func (p *Piece) Color() Color {
	return pieceColors[p.Type]
}

// Shape returns the piece's current occupancy matrix: the base shape rotated
// clockwise Rotation times. Derived on every call so it can never desync
// from Rotation.
func (p *Piece) Shape() [][]bool {
	shape := baseShapes[p.Type]
	for i := 0; i < ((p.Rotation%4)+4)%4; i++ {
		shape = rotateClockwise(shape)
	}
	return copyShape(shape)
}

// Rotate advances the piece one clockwise quarter turn
func (p *Piece) Rotate() {
	p.Rotation = (p.Rotation + 1) % 4
}

// RotateBack reverts one clockwise quarter turn, used to roll back a
// rotation that collided
func (p *Piece) RotateBack() {
	p.Rotation = (p.Rotation + 3) % 4
}

// MoveLeft shifts the piece one column left. Unconditional: callers must
// check legality against the board first.
func (p *Piece) MoveLeft() {
	p.X--
}

// MoveRight shifts the piece one column right. Unconditional.
func (p *Piece) MoveRight() {
	p.X++
}

// MoveDown shifts the piece one row down. Unconditional.
func (p *Piece) MoveDown() {
	p.Y++
}

// Clone returns an independent copy of the piece
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}

// rotateClockwise returns shape turned 90 degrees clockwise:
// result[j][n-1-i] = shape[i][j] for an n x n matrix
func rotateClockwise(shape [][]bool) [][]bool {
	n := len(shape)
	result := make([][]bool, n)
	for i := range result {
		result[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			result[j][n-1-i] = shape[i][j]
		}
	}
	return result
}

func copyShape(shape [][]bool) [][]bool {
	result := make([][]bool, len(shape))
	for i, row := range shape {
		result[i] = make([]bool, len(row))
		copy(result[i], row)
	}
	return result
}
