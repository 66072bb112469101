package moss

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// QuadParams describes one quad for Builder.Set. Implementations own the
// corner geometry; UV derivation stays in the builder so the atlas size and
// half-texel flag fixed at construction apply uniformly.
type QuadParams interface {
	// Corners returns the corner positions in clockwise order
	// (top-left, top-right, bottom-right, bottom-left).
	Corners() [4]mgl32.Vec2
	// Source returns the atlas source rectangle and UV flip mode.
	Source() (Rect, UVFlip)
	// Tint returns the color replicated across all four vertices.
	Tint() Color
}

// Tile is a quad sized exactly by its source rectangle, the common tile-map
// case.
type Tile struct {
	Pos   mgl32.Vec2
	Color Color
	Src   Rect
	Flip  UVFlip
}

func (t Tile) Corners() [4]mgl32.Vec2 { return quadCorners(t.Pos, mgl32.Vec2{t.Src.W, t.Src.H}) }
func (t Tile) Source() (Rect, UVFlip) { return t.Src, t.Flip }
func (t Tile) Tint() Color            { return t.Color }

// SizedTile stretches its source rectangle to an explicit size.
type SizedTile struct {
	Pos, Size mgl32.Vec2
	Color     Color
	Src       Rect
	Flip      UVFlip
}

func (t SizedTile) Corners() [4]mgl32.Vec2 { return quadCorners(t.Pos, t.Size) }
func (t SizedTile) Source() (Rect, UVFlip) { return t.Src, t.Flip }
func (t SizedTile) Tint() Color            { return t.Color }

// TransformedTile adds an origin pivot, scale and rotation. The pivot is
// Pos+Origin; with zero Rotation and unit Scale the anchor corner sits at
// Pos, exactly like SizedTile. A zero Scale means unscaled, keeping the
// zero value usable.
type TransformedTile struct {
	Pos      mgl32.Vec2
	Origin   mgl32.Vec2 // pivot offset from Pos, in quad-local units
	Size     mgl32.Vec2
	Scale    mgl32.Vec2
	Rotation float32 // radians
	Color    Color
	Src      Rect
	Flip     UVFlip
}

func (t TransformedTile) Corners() [4]mgl32.Vec2 {
	sx, sy := t.Scale.X(), t.Scale.Y()
	if sx == 0 && sy == 0 {
		sx, sy = 1, 1
	}

	// Corner offsets from the pivot; the pivot itself stays unscaled.
	wx := t.Pos.X() + t.Origin.X()
	wy := t.Pos.Y() + t.Origin.Y()
	x0 := -t.Origin.X() * sx
	y0 := -t.Origin.Y() * sy
	x1 := (t.Size.X() - t.Origin.X()) * sx
	y1 := (t.Size.Y() - t.Origin.Y()) * sy

	if t.Rotation == 0 {
		return [4]mgl32.Vec2{
			{wx + x0, wy + y0},
			{wx + x1, wy + y0},
			{wx + x1, wy + y1},
			{wx + x0, wy + y1},
		}
	}

	c, s := math32.Cos(t.Rotation), math32.Sin(t.Rotation)
	tl := mgl32.Vec2{wx + x0*c - y0*s, wy + x0*s + y0*c}
	tr := mgl32.Vec2{wx + x1*c - y0*s, wy + x1*s + y0*c}
	br := mgl32.Vec2{wx + x1*c - y1*s, wy + x1*s + y1*c}
	// Fourth corner closes the parallelogram, saving one rotation.
	bl := mgl32.Vec2{tl.X() + br.X() - tr.X(), tl.Y() + br.Y() - tr.Y()}
	return [4]mgl32.Vec2{tl, tr, br, bl}
}

func (t TransformedTile) Source() (Rect, UVFlip) { return t.Src, t.Flip }
func (t TransformedTile) Tint() Color            { return t.Color }
