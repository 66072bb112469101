package tilemap

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/moss"
)

func TestGridAddressing(t *testing.T) {
	g := Grid{Cols: 3, Rows: 2, TileW: 16, TileH: 8}

	assert.Equal(t, 6, g.QuadCount())
	assert.Equal(t, 0, g.QuadIndex(0, 0))
	assert.Equal(t, 2, g.QuadIndex(2, 0))
	assert.Equal(t, 3, g.QuadIndex(0, 1))
	assert.Equal(t, 5, g.QuadIndex(2, 1))

	assert.Equal(t, mgl32.Vec2{32, 8}, g.CellPos(2, 1))
	assert.Equal(t, mgl32.Vec2{48, 16}, g.Size())

	assert.True(t, g.Contains(0, 0))
	assert.True(t, g.Contains(2, 1))
	assert.False(t, g.Contains(3, 0))
	assert.False(t, g.Contains(0, 2))
	assert.False(t, g.Contains(-1, 0))
}

func TestFill(t *testing.T) {
	atlas := mgl32.Vec2{64, 64}
	g := Grid{Cols: 2, Rows: 2, TileW: 32, TileH: 32}

	b, err := moss.New(atlas, false, g.QuadCount(), moss.Canonical)
	require.NoError(t, err)

	err = Fill(b, g, func(col, row int) moss.Tile {
		return moss.Tile{
			Pos:   g.CellPos(col, row),
			Color: moss.White,
			Src:   moss.Rect{X: float32(col) * 32, Y: float32(row) * 32, W: 32, H: 32},
		}
	})
	require.NoError(t, err)

	// Every cell's anchor vertex carries its position.
	verts := b.Vertices()
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			v := verts[g.QuadIndex(col, row)*b.VerticesPerQuad()]
			assert.Equal(t, g.CellPos(col, row), v.Pos, "cell (%d,%d)", col, row)
		}
	}
}

func TestFillTooBigForBuilder(t *testing.T) {
	b, err := moss.New(mgl32.Vec2{64, 64}, false, 3, moss.Canonical)
	require.NoError(t, err)

	g := Grid{Cols: 2, Rows: 2, TileW: 32, TileH: 32}
	err = Fill(b, g, func(int, int) moss.Tile {
		return moss.Tile{Src: moss.Rect{W: 32, H: 32}}
	})
	assert.ErrorIs(t, err, moss.ErrInvalidCapacity)
}
