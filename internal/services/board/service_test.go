package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gesturelabs/gestris/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	board   *model.Board
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.board = model.NewBoard(model.DefaultCols, model.DefaultRows)
}

// fillRow fills a whole row with the given color
func (s *ServiceSuite) fillRow(row int, c model.Color) {
	for col := 0; col < s.board.Cols; col++ {
		s.board.Set(row, col, c)
	}
}

// CanMove tests

func (s *ServiceSuite) TestCanMoveOnEmptyBoard() {
	p := model.SpawnPiece(model.PieceT, s.board.Cols)

	s.True(s.service.CanMove(s.board, p, 0, 0))
	s.True(s.service.CanMove(s.board, p, -1, 0))
	s.True(s.service.CanMove(s.board, p, 1, 0))
	s.True(s.service.CanMove(s.board, p, 0, 1))
}

func (s *ServiceSuite) TestCanMoveRejectsLeftWall() {
	// T at x=0: occupied columns are 0..2
	p := model.NewPiece(model.PieceT, 0, 5)

	s.True(s.service.CanMove(s.board, p, 0, 0))
	s.False(s.service.CanMove(s.board, p, -1, 0))
}

func (s *ServiceSuite) TestCanMoveRejectsRightWall() {
	// T bounding box is 3 wide, so x=7 puts it flush against the right wall
	p := model.NewPiece(model.PieceT, 7, 5)

	s.True(s.service.CanMove(s.board, p, 0, 0))
	s.False(s.service.CanMove(s.board, p, 1, 0))
}

func (s *ServiceSuite) TestCanMoveRejectsFloor() {
	// T occupies rows 0 and 1 of its box; bottom cell is at y+1
	p := model.NewPiece(model.PieceT, 4, s.board.Rows-2)

	s.True(s.service.CanMove(s.board, p, 0, 0))
	s.False(s.service.CanMove(s.board, p, 0, 1))
}

func (s *ServiceSuite) TestCanMoveRejectsOccupiedCell() {
	p := model.NewPiece(model.PieceT, 4, 5)
	// T's top cell is at (5, 5); block the cell below it
	s.board.Set(7, 5, model.ColorRed)

	s.True(s.service.CanMove(s.board, p, 0, 0))
	s.False(s.service.CanMove(s.board, p, 0, 1))
}

func (s *ServiceSuite) TestCanMoveIgnoresOccupancyAboveBoard() {
	// Piece partially above the top edge: rows < 0 are only checked
	// against the horizontal bounds
	p := model.NewPiece(model.PieceT, 4, -1)

	s.True(s.service.CanMove(s.board, p, 0, 0))

	// But it still cannot pass the side walls while up there
	left := model.NewPiece(model.PieceT, 0, -1)
	s.False(s.service.CanMove(s.board, left, -1, 0))
}

func (s *ServiceSuite) TestIsCollisionAtSpawnOverOccupiedCells() {
	p := model.SpawnPiece(model.PieceT, s.board.Cols)
	s.False(s.service.IsCollision(s.board, p))

	for _, cell := range [][2]int{{0, 4}, {1, 3}, {1, 4}, {1, 5}} {
		s.board.Set(cell[0], cell[1], model.ColorBlue)
	}
	s.True(s.service.IsCollision(s.board, p))
}

// Lock tests

func (s *ServiceSuite) TestLockWritesPieceColor() {
	p := model.NewPiece(model.PieceO, 4, 10)

	s.service.Lock(s.board, p)

	// O occupies the center 2x2 of its 4x4 box
	s.Equal(model.ColorYellow, s.board.Get(11, 5))
	s.Equal(model.ColorYellow, s.board.Get(11, 6))
	s.Equal(model.ColorYellow, s.board.Get(12, 5))
	s.Equal(model.ColorYellow, s.board.Get(12, 6))
	s.True(s.board.IsEmpty(10, 4))
}

func (s *ServiceSuite) TestLockDropsCellsAboveBoard() {
	// Vertical I at y=-2: two cells above the board, two inside
	p := model.NewPiece(model.PieceI, 4, -2)
	p.Rotate()

	s.service.Lock(s.board, p)

	filled := 0
	for row := 0; row < s.board.Rows; row++ {
		for col := 0; col < s.board.Cols; col++ {
			if !s.board.IsEmpty(row, col) {
				filled++
			}
		}
	}
	s.Equal(2, filled)
}

// Row clearing tests

func (s *ServiceSuite) TestClearNoCompletedRowsIsIdempotent() {
	s.board.Set(19, 0, model.ColorCyan)
	s.board.Set(18, 9, model.ColorRed)
	before := s.board.Clone()

	cleared, delta := s.service.ClearCompletedRows(s.board)

	s.Equal(0, cleared)
	s.Equal(0, delta)
	s.Equal(before.Cells, s.board.Cells)
}

func (s *ServiceSuite) TestClearSingleRow() {
	s.fillRow(19, model.ColorGreen)
	s.board.Set(18, 4, model.ColorRed)

	cleared, delta := s.service.ClearCompletedRows(s.board)

	s.Equal(1, cleared)
	s.Equal(100, delta)
	// The partial row above shifted down
	s.Equal(model.ColorRed, s.board.Get(19, 4))
	s.True(s.board.IsEmpty(18, 4))
}

func (s *ServiceSuite) TestClearNonAdjacentRows() {
	// Rows 5 and 7 complete, everything else partially filled
	for row := 0; row < s.board.Rows; row++ {
		s.board.Set(row, row%s.board.Cols, model.ColorBlue)
	}
	s.fillRow(5, model.ColorCyan)
	s.fillRow(7, model.ColorPurple)

	cleared, delta := s.service.ClearCompletedRows(s.board)

	s.Equal(2, cleared)
	s.Equal(300, delta)
	s.Empty(s.service.CompletedRows(s.board))

	// The top two rows are now empty
	for col := 0; col < s.board.Cols; col++ {
		s.True(s.board.IsEmpty(0, col))
		s.True(s.board.IsEmpty(1, col))
	}

	// Rows above the lower cleared index shifted down by two;
	// the single marker in old row 4 now sits in row 6
	s.Equal(model.ColorBlue, s.board.Get(6, 4))
	// Rows below row 7 did not move
	s.Equal(model.ColorBlue, s.board.Get(8, 8))
	s.Equal(model.ColorBlue, s.board.Get(19, 9))
}

func (s *ServiceSuite) TestClearFourRows() {
	for row := 16; row < 20; row++ {
		s.fillRow(row, model.ColorCyan)
	}

	cleared, delta := s.service.ClearCompletedRows(s.board)

	s.Equal(4, cleared)
	s.Equal(800, delta)
}

func (s *ServiceSuite) TestScoreTable() {
	s.Equal(0, s.service.ScoreForRows(0))
	s.Equal(100, s.service.ScoreForRows(1))
	s.Equal(300, s.service.ScoreForRows(2))
	s.Equal(500, s.service.ScoreForRows(3))
	s.Equal(800, s.service.ScoreForRows(4))
}

// Drop position tests

func (s *ServiceSuite) TestDropRowOnEmptyBoard() {
	p := model.SpawnPiece(model.PieceT, s.board.Cols)

	// T occupies rows 0 and 1 of its box, so it rests at rows-2
	s.Equal(s.board.Rows-2, s.service.DropRow(s.board, p))
}

func (s *ServiceSuite) TestDropRowLandsOnStack() {
	s.fillRow(19, model.ColorRed)
	s.fillRow(18, model.ColorRed)
	p := model.SpawnPiece(model.PieceT, s.board.Cols)

	s.Equal(16, s.service.DropRow(s.board, p))
}

func (s *ServiceSuite) TestDropRowWhenAlreadyBlocked() {
	p := model.NewPiece(model.PieceT, 4, 5)
	s.board.Set(7, 4, model.ColorRed)

	s.Equal(5, s.service.DropRow(s.board, p))
}
