package moss

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAtlas = mgl32.Vec2{256, 256}

func uvsOf(q [4]Vertex) [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{q[0].UV, q[1].UV, q[2].UV, q[3].UV}
}

func TestVerticesPerQuad(t *testing.T) {
	assert.Equal(t, 4, VerticesPerQuad(true))
	assert.Equal(t, 6, VerticesPerQuad(false))
}

func TestQuadIndicesPattern(t *testing.T) {
	inds := QuadIndices(3)
	require.Len(t, inds, 18)
	for q := 0; q < 3; q++ {
		base := uint32(q * 4)
		want := []uint32{base, base + 1, base + 2, base + 2, base + 3, base}
		assert.Equal(t, want, inds[q*6:q*6+6], "quad %d", q)
	}
}

func TestQuadVerticesPositions(t *testing.T) {
	q, err := QuadVertices(mgl32.Vec2{10, 20}, mgl32.Vec2{32, 32}, White,
		Rect{X: 0, Y: 0, W: 32, H: 32}, FlipNone, testAtlas, false)
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec2{10, 20}, q[0].Pos)
	assert.Equal(t, mgl32.Vec2{42, 20}, q[1].Pos)
	assert.Equal(t, mgl32.Vec2{42, 52}, q[2].Pos)
	assert.Equal(t, mgl32.Vec2{10, 52}, q[3].Pos)
}

func TestQuadVerticesUVFlips(t *testing.T) {
	src := Rect{X: 0, Y: 0, W: 32, H: 32}

	// 32/256 = 0.125, exact in float32.
	cases := []struct {
		flip UVFlip
		want [4]mgl32.Vec2
	}{
		{FlipNone, [4]mgl32.Vec2{{0, 0}, {0.125, 0}, {0.125, 0.125}, {0, 0.125}}},
		{FlipHorizontal, [4]mgl32.Vec2{{0.125, 0}, {0, 0}, {0, 0.125}, {0.125, 0.125}}},
		{FlipVertical, [4]mgl32.Vec2{{0, 0.125}, {0.125, 0.125}, {0.125, 0}, {0, 0}}},
		{FlipBoth, [4]mgl32.Vec2{{0.125, 0.125}, {0, 0.125}, {0, 0}, {0.125, 0}}},
	}
	for _, c := range cases {
		q, err := QuadVertices(mgl32.Vec2{}, mgl32.Vec2{32, 32}, White, src, c.flip, testAtlas, false)
		require.NoError(t, err)
		assert.Equal(t, c.want, uvsOf(q), "flip %d", c.flip)
	}
}

func TestQuadVerticesOffsetSourceRect(t *testing.T) {
	q, err := QuadVertices(mgl32.Vec2{}, mgl32.Vec2{32, 32}, White,
		Rect{X: 64, Y: 128, W: 64, H: 32}, FlipNone, testAtlas, false)
	require.NoError(t, err)

	want := [4]mgl32.Vec2{{0.25, 0.5}, {0.5, 0.5}, {0.5, 0.625}, {0.25, 0.625}}
	assert.Equal(t, want, uvsOf(q))
}

func TestQuadVerticesHalfTexel(t *testing.T) {
	src := Rect{X: 0, Y: 0, W: 32, H: 32}
	d := float32(0.5) / 256

	q, err := QuadVertices(mgl32.Vec2{}, mgl32.Vec2{32, 32}, White, src, FlipNone, testAtlas, true)
	require.NoError(t, err)
	want := [4]mgl32.Vec2{
		{d, d},
		{0.125 - d, d},
		{0.125 - d, 0.125 - d},
		{d, 0.125 - d},
	}
	assert.Equal(t, want, uvsOf(q))

	// The inset precedes the flip: flipping swaps the already-inset rows.
	q, err = QuadVertices(mgl32.Vec2{}, mgl32.Vec2{32, 32}, White, src, FlipVertical, testAtlas, true)
	require.NoError(t, err)
	want = [4]mgl32.Vec2{
		{d, 0.125 - d},
		{0.125 - d, 0.125 - d},
		{0.125 - d, d},
		{d, d},
	}
	assert.Equal(t, want, uvsOf(q))
}

func TestQuadVerticesTintReplicated(t *testing.T) {
	tint := Color{0.25, 0.5, 0.75, 1}
	q, err := QuadVertices(mgl32.Vec2{}, mgl32.Vec2{8, 8}, tint,
		Rect{W: 8, H: 8}, FlipNone, testAtlas, false)
	require.NoError(t, err)
	for i := range q {
		assert.Equal(t, tint, q[i].Color, "vertex %d", i)
	}
}

func TestQuadVerticesDegenerateRect(t *testing.T) {
	// Zero-size rects stay legal; they make zero-area triangles, not errors.
	q, err := QuadVertices(mgl32.Vec2{5, 5}, mgl32.Vec2{}, White,
		Rect{X: 16, Y: 16}, FlipNone, testAtlas, false)
	require.NoError(t, err)
	assert.Equal(t, q[0], q[2])
}

func TestQuadVerticesErrors(t *testing.T) {
	size := mgl32.Vec2{32, 32}

	_, err := QuadVertices(mgl32.Vec2{}, size, White, Rect{W: 32, H: 32}, FlipNone, mgl32.Vec2{0, 256}, false)
	assert.ErrorIs(t, err, ErrInvalidAtlasSize)

	bad := []Rect{
		{X: 240, Y: 0, W: 32, H: 32}, // spills right
		{X: 0, Y: 250, W: 32, H: 32}, // spills bottom
		{X: -1, Y: 0, W: 32, H: 32},  // negative origin
		{X: 0, Y: 0, W: -32, H: 32},  // negative width
		{X: 0, Y: 0, W: 32, H: -32},  // negative height
		{X: 0, Y: 0, W: 257, H: 32},  // wider than atlas
	}
	for _, r := range bad {
		_, err := QuadVertices(mgl32.Vec2{}, size, White, r, FlipNone, testAtlas, false)
		assert.ErrorIs(t, err, ErrInvalidSourceRect, "rect %+v", r)
	}
}
