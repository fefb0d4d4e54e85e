package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesturelabs/gestris/internal/model"
)

func countFilled(shape [][]bool) int {
	count := 0
	for _, row := range shape {
		for _, cell := range row {
			if cell {
				count++
			}
		}
	}
	return count
}

func TestEveryPieceHasFourCells(t *testing.T) {
	for _, pt := range model.AllPieceTypes {
		p := model.NewPiece(pt, 0, 0)
		for rotation := 0; rotation < 4; rotation++ {
			assert.Equal(t, 4, countFilled(p.Shape()), "piece %s rotation %d", pt, rotation)
			p.Rotate()
		}
	}
}

func TestRotationHasOrderFour(t *testing.T) {
	for _, pt := range model.AllPieceTypes {
		p := model.NewPiece(pt, 0, 0)
		original := p.Shape()

		p.Rotate()
		p.Rotate()
		p.Rotate()
		p.Rotate()

		assert.Equal(t, 0, p.Rotation, "piece %s", pt)
		assert.Equal(t, original, p.Shape(), "piece %s", pt)
	}
}

func TestRotateBackRevertsRotate(t *testing.T) {
	for _, pt := range model.AllPieceTypes {
		p := model.NewPiece(pt, 0, 0)
		before := p.Shape()

		p.Rotate()
		p.RotateBack()

		assert.Equal(t, 0, p.Rotation, "piece %s", pt)
		assert.Equal(t, before, p.Shape(), "piece %s", pt)
	}
}

func TestORotationInvariant(t *testing.T) {
	p := model.NewPiece(model.PieceO, 0, 0)
	base := p.Shape()
	for i := 0; i < 3; i++ {
		p.Rotate()
		assert.Equal(t, base, p.Shape(), "rotation %d", p.Rotation)
	}
}

func TestIRotatesToColumn(t *testing.T) {
	p := model.NewPiece(model.PieceI, 0, 0)
	p.Rotate()

	shape := p.Shape()
	// One clockwise turn moves the horizontal bar in row 1 to column 2
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, j == 2, shape[i][j], "cell (%d,%d)", i, j)
		}
	}
}

func TestShapeIsNotAliased(t *testing.T) {
	p := model.NewPiece(model.PieceT, 0, 0)
	shape := p.Shape()
	shape[0][0] = !shape[0][0]

	require.NotEqual(t, shape, p.Shape())
	assert.Equal(t, model.BaseShape(model.PieceT), p.Shape())
}

func TestSpawnPieceIsCentered(t *testing.T) {
	tests := []struct {
		pieceType model.PieceType
		wantX     int
	}{
		{model.PieceI, 3}, // 4x4 matrix on a 10-wide board
		{model.PieceO, 3},
		{model.PieceT, 3}, // 3x3 matrix
		{model.PieceS, 3},
	}

	for _, tt := range tests {
		p := model.SpawnPiece(tt.pieceType, model.DefaultCols)
		assert.Equal(t, tt.wantX, p.X, "piece %s", tt.pieceType)
		assert.Equal(t, 0, p.Y, "piece %s", tt.pieceType)
		assert.Equal(t, 0, p.Rotation, "piece %s", tt.pieceType)
	}
}

func TestPieceColorsAreDistinct(t *testing.T) {
	seen := map[model.Color]model.PieceType{}
	for _, pt := range model.AllPieceTypes {
		p := model.NewPiece(pt, 0, 0)
		c := p.Color()
		require.True(t, c.IsValid(), "piece %s", pt)
		_, dup := seen[c]
		require.False(t, dup, "color %s reused by %s", c, pt)
		seen[c] = pt
	}
}

func TestPieceTypeValidity(t *testing.T) {
	for _, pt := range model.AllPieceTypes {
		assert.True(t, pt.IsValid())
	}
	assert.False(t, model.PieceType("Q").IsValid())
	assert.False(t, model.PieceType("").IsValid())
}
