package moss

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	vertsPerQuad    = 4 // indexed
	vertsPerQuadExp = 6 // expanded, two triangles with no sharing
	indsPerQuad     = 6
)

// UVFlip mirrors a quad's UV assignment along one or both axes. Flips permute
// which corner receives which UV; coordinates are never negated.
type UVFlip uint8

const (
	FlipNone       UVFlip = 0
	FlipHorizontal UVFlip = 1 << 0
	FlipVertical   UVFlip = 1 << 1
	FlipBoth              = FlipHorizontal | FlipVertical
)

// Rect is a rectangle in atlas pixel space.
type Rect struct {
	X, Y, W, H float32
}

// Right returns X+W.
func (r Rect) Right() float32 { return r.X + r.W }

// Bottom returns Y+H.
func (r Rect) Bottom() float32 { return r.Y + r.H }

func (r Rect) validate(atlas mgl32.Vec2) error {
	if r.W < 0 || r.H < 0 || r.X < 0 || r.Y < 0 || r.Right() > atlas.X() || r.Bottom() > atlas.Y() {
		return fmt.Errorf("%w: (%g,%g %gx%g) in atlas %gx%g",
			ErrInvalidSourceRect, r.X, r.Y, r.W, r.H, atlas.X(), atlas.Y())
	}
	return nil
}

// Vertex is the canonical record every host layout derives from:
// 2 floats position, 2 floats UV, 4 floats color.
type Vertex struct {
	Pos   mgl32.Vec2
	UV    mgl32.Vec2
	Color Color
}

// VertexFunc converts a canonical vertex into the host's vertex record.
// Conversions must be pure; the builder calls them once per written vertex.
type VertexFunc[V any] func(Vertex) V

// Canonical is the identity conversion for hosts consuming Vertex directly.
func Canonical(v Vertex) Vertex { return v }

// VerticesPerQuad reports how many vertices one quad occupies:
// 4 when indexed, 6 when expanded.
func VerticesPerQuad(indexed bool) int {
	if indexed {
		return vertsPerQuad
	}
	return vertsPerQuadExp
}

// QuadIndices builds the index buffer for quadLimit quads. Each quad
// contributes {4i, 4i+1, 4i+2, 4i+2, 4i+3, 4i}: two clockwise triangles
// sharing the anchor-to-opposite diagonal.
func QuadIndices(quadLimit int) []uint32 {
	inds := make([]uint32, quadLimit*indsPerQuad)
	v := uint32(0)
	for i := 0; i < len(inds); i += indsPerQuad {
		inds[i+0] = v
		inds[i+1] = v + 1
		inds[i+2] = v + 2
		inds[i+3] = v + 2
		inds[i+4] = v + 3
		inds[i+5] = v
		v += vertsPerQuad
	}
	return inds
}

// QuadVertices builds one axis-aligned quad's corner vertices in clockwise
// order (top-left, top-right, bottom-right, bottom-left under a Y-down
// convention). Pure: equal arguments always produce equal vertices.
func QuadVertices(pos, size mgl32.Vec2, tint Color, src Rect, flip UVFlip, atlas mgl32.Vec2, halfTexel bool) ([4]Vertex, error) {
	if atlas.X() <= 0 || atlas.Y() <= 0 {
		return [4]Vertex{}, fmt.Errorf("%w: %gx%g", ErrInvalidAtlasSize, atlas.X(), atlas.Y())
	}
	if err := src.validate(atlas); err != nil {
		return [4]Vertex{}, err
	}
	u0, v0, u1, v1 := uvRect(src, atlas, flip, halfTexel)
	return assemble(quadCorners(pos, size), tint, u0, v0, u1, v1), nil
}

// quadCorners expands an anchor and size into the four corners, clockwise.
func quadCorners(pos, size mgl32.Vec2) [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{
		pos,
		{pos.X() + size.X(), pos.Y()},
		{pos.X() + size.X(), pos.Y() + size.Y()},
		{pos.X(), pos.Y() + size.Y()},
	}
}

// uvRect normalizes the source rect into UV space and applies the half-texel
// inset and flips. (u0,v0) pairs with corner 0, (u1,v1) with corner 2; the
// inset precedes the flips so both orientations sample the same texels.
func uvRect(src Rect, atlas mgl32.Vec2, flip UVFlip, halfTexel bool) (u0, v0, u1, v1 float32) {
	u0 = src.X / atlas.X()
	v0 = src.Y / atlas.Y()
	u1 = src.Right() / atlas.X()
	v1 = src.Bottom() / atlas.Y()
	if halfTexel {
		du := 0.5 / atlas.X()
		dv := 0.5 / atlas.Y()
		u0, u1 = u0+du, u1-du
		v0, v1 = v0+dv, v1-dv
	}
	if flip&FlipHorizontal != 0 {
		u0, u1 = u1, u0
	}
	if flip&FlipVertical != 0 {
		v0, v1 = v1, v0
	}
	return u0, v0, u1, v1
}

// assemble pairs corners with their UVs. Corners 1 and 3 mix the rect's two
// UV pairs, so flips that swapped u or v columns land on the right corners.
func assemble(c [4]mgl32.Vec2, tint Color, u0, v0, u1, v1 float32) [4]Vertex {
	return [4]Vertex{
		{Pos: c[0], UV: mgl32.Vec2{u0, v0}, Color: tint},
		{Pos: c[1], UV: mgl32.Vec2{u1, v0}, Color: tint},
		{Pos: c[2], UV: mgl32.Vec2{u1, v1}, Color: tint},
		{Pos: c[3], UV: mgl32.Vec2{u0, v1}, Color: tint},
	}
}
