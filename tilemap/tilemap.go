// Package tilemap maps uniform tile grids onto builder quad slots.
package tilemap

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/moss"
)

// Grid describes a map of Cols x Rows cells, each TileW x TileH units,
// laid out row-major from the origin with Y growing downward.
type Grid struct {
	Cols, Rows   int
	TileW, TileH float32
}

// QuadCount returns the builder capacity the grid needs.
func (g Grid) QuadCount() int { return g.Cols * g.Rows }

// QuadIndex returns the row-major quad slot for a cell.
func (g Grid) QuadIndex(col, row int) int { return row*g.Cols + col }

// Contains reports whether the cell lies inside the grid.
func (g Grid) Contains(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// CellPos returns a cell's anchor position.
func (g Grid) CellPos(col, row int) mgl32.Vec2 {
	return mgl32.Vec2{float32(col) * g.TileW, float32(row) * g.TileH}
}

// Size returns the grid's total extent in position units.
func (g Grid) Size() mgl32.Vec2 {
	return mgl32.Vec2{float32(g.Cols) * g.TileW, float32(g.Rows) * g.TileH}
}

// Fill writes every cell's quad from the at callback, row by row. The
// builder needs room for QuadCount quads; cells map to slots via QuadIndex.
func Fill[V any](b *moss.Builder[V], g Grid, at func(col, row int) moss.Tile) error {
	if g.QuadCount() > b.QuadLimit() {
		return fmt.Errorf("%w: grid wants %d quads, builder holds %d",
			moss.ErrInvalidCapacity, g.QuadCount(), b.QuadLimit())
	}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			tile := at(col, row)
			if err := b.SetTile(g.QuadIndex(col, row), tile); err != nil {
				return fmt.Errorf("cell (%d,%d): %w", col, row, err)
			}
		}
	}
	return nil
}
