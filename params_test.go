package moss

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCornersInDelta(t *testing.T, want, got [4]mgl32.Vec2) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i].X(), got[i].X(), 1e-4, "corner %d x", i)
		assert.InDelta(t, want[i].Y(), got[i].Y(), 1e-4, "corner %d y", i)
	}
}

func TestTileCornersFromSource(t *testing.T) {
	tile := Tile{Pos: mgl32.Vec2{10, 20}, Src: Rect{X: 96, Y: 0, W: 16, H: 24}}
	want := [4]mgl32.Vec2{{10, 20}, {26, 20}, {26, 44}, {10, 44}}
	assert.Equal(t, want, tile.Corners())
}

func TestSizedTileStretch(t *testing.T) {
	tile := SizedTile{Size: mgl32.Vec2{100, 50}, Src: Rect{W: 16, H: 16}}
	want := [4]mgl32.Vec2{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	assert.Equal(t, want, tile.Corners())
}

func TestTransformedTileZeroValueDefaults(t *testing.T) {
	// Zero Scale means unscaled and zero Rotation is the identity, so the
	// zero-value transform degenerates to a SizedTile.
	plain := SizedTile{Pos: mgl32.Vec2{3, 4}, Size: mgl32.Vec2{8, 8}}
	xf := TransformedTile{Pos: mgl32.Vec2{3, 4}, Size: mgl32.Vec2{8, 8}}
	assert.Equal(t, plain.Corners(), xf.Corners())
}

func TestTransformedTileScaleAroundPivot(t *testing.T) {
	xf := TransformedTile{
		Pos:    mgl32.Vec2{10, 10},
		Origin: mgl32.Vec2{4, 4}, // center of an 8x8 quad
		Size:   mgl32.Vec2{8, 8},
		Scale:  mgl32.Vec2{2, 2},
	}
	// Pivot sits at (14,14); corners double their distance from it.
	want := [4]mgl32.Vec2{{6, 6}, {22, 6}, {22, 22}, {6, 22}}
	assert.Equal(t, want, xf.Corners())
}

func TestTransformedTileQuarterTurn(t *testing.T) {
	xf := TransformedTile{
		Pos:      mgl32.Vec2{10, 10},
		Origin:   mgl32.Vec2{1, 1},
		Size:     mgl32.Vec2{2, 2},
		Rotation: math.Pi / 2,
	}
	// Pivot (11,11); each local corner turns (x,y) -> (-y,x).
	want := [4]mgl32.Vec2{{12, 10}, {12, 12}, {10, 12}, {10, 10}}
	assertCornersInDelta(t, want, xf.Corners())
}

func TestTransformedTileArbitraryRotation(t *testing.T) {
	const rot = 0.7
	xf := TransformedTile{
		Pos:      mgl32.Vec2{-5, 3},
		Origin:   mgl32.Vec2{2, 6},
		Size:     mgl32.Vec2{10, 12},
		Scale:    mgl32.Vec2{1.5, 0.5},
		Rotation: rot,
	}

	// Rotate every local corner independently and compare.
	sin, cos := math.Sincos(rot)
	c, s := float32(cos), float32(sin)
	px, py := float32(-5+2), float32(3+6)
	local := [4][2]float32{
		{-2 * 1.5, -6 * 0.5},
		{8 * 1.5, -6 * 0.5},
		{8 * 1.5, 6 * 0.5},
		{-2 * 1.5, 6 * 0.5},
	}
	var want [4]mgl32.Vec2
	for i, l := range local {
		want[i] = mgl32.Vec2{px + l[0]*c - l[1]*s, py + l[0]*s + l[1]*c}
	}
	assertCornersInDelta(t, want, xf.Corners())
}

func TestParamsThroughSet(t *testing.T) {
	b, err := New(mgl32.Vec2{64, 64}, false, 2, Canonical)
	require.NoError(t, err)

	xf := TransformedTile{
		Pos:      mgl32.Vec2{16, 16},
		Origin:   mgl32.Vec2{8, 8},
		Size:     mgl32.Vec2{16, 16},
		Rotation: math.Pi / 2,
		Color:    Red,
		Src:      Rect{X: 32, Y: 0, W: 16, H: 16},
		Flip:     FlipVertical,
	}
	require.NoError(t, b.Set(1, xf))

	corners := xf.Corners()
	got := b.Vertices()[4:8]
	for i := range corners {
		assert.Equal(t, corners[i], got[i].Pos, "vertex %d", i)
		assert.Equal(t, Red, got[i].Color, "vertex %d", i)
	}
	// FlipVertical on a 16x16 rect at (32,0) in a 64x64 atlas.
	assert.Equal(t, mgl32.Vec2{0.5, 0.25}, got[0].UV)
	assert.Equal(t, mgl32.Vec2{0.75, 0}, got[2].UV)
}
