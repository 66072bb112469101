// Package ebitenmesh feeds moss buffers to Ebitengine's DrawTriangles.
//
// Ebitengine wants ebiten.Vertex records with source coordinates in texel
// space and uint16 indices. The Converter emits those records straight into
// the builder's storage, so there is no per-frame conversion: a Mesh just
// hands the live slices to DrawTriangles.
package ebitenmesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hubastard/moss"
)

// MaxQuads is the largest indexed capacity a single draw can address with
// Ebitengine's uint16 indices (4 vertices per quad, 65536 vertex ceiling).
const MaxQuads = 1 << 14

// Converter returns the vertex conversion for an atlas of the given pixel
// size, scaling normalized UVs back up to texels.
func Converter(atlas mgl32.Vec2) moss.VertexFunc[ebiten.Vertex] {
	return func(v moss.Vertex) ebiten.Vertex {
		return ebiten.Vertex{
			DstX:   v.Pos.X(),
			DstY:   v.Pos.Y(),
			SrcX:   v.UV.X() * atlas.X(),
			SrcY:   v.UV.Y() * atlas.Y(),
			ColorR: v.Color[0],
			ColorG: v.Color[1],
			ColorB: v.Color[2],
			ColorA: v.Color[3],
		}
	}
}

// NewBuilder returns an indexed builder emitting ebiten vertices.
func NewBuilder(atlas mgl32.Vec2, halfTexel bool, quadLimit int) (*moss.Builder[ebiten.Vertex], error) {
	if quadLimit > MaxQuads {
		return nil, fmt.Errorf("%w: %d quads, uint16 indices reach %d",
			moss.ErrInvalidCapacity, quadLimit, MaxQuads)
	}
	return moss.New(atlas, halfTexel, quadLimit, Converter(atlas))
}

// Indices16 narrows the builder's index buffer to uint16.
func Indices16(b *moss.Builder[ebiten.Vertex]) ([]uint16, error) {
	inds := b.Indices()
	if inds == nil {
		return nil, fmt.Errorf("%w: builder is non-indexed", moss.ErrInvalidCapacity)
	}
	if b.QuadLimit() > MaxQuads {
		return nil, fmt.Errorf("%w: %d quads, uint16 indices reach %d",
			moss.ErrInvalidCapacity, b.QuadLimit(), MaxQuads)
	}
	out := make([]uint16, len(inds))
	for i, v := range inds {
		out[i] = uint16(v)
	}
	return out, nil
}

// Mesh pairs a builder's live vertex view with narrowed indices.
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Compile prepares a Mesh from an indexed builder. Vertices alias the
// builder's storage, so later Set calls show up in subsequent draws; the
// indices are narrowed once and never change.
func Compile(b *moss.Builder[ebiten.Vertex]) (*Mesh, error) {
	inds, err := Indices16(b)
	if err != nil {
		return nil, err
	}
	verts, _ := b.Finalize()
	return &Mesh{Vertices: verts, Indices: inds}, nil
}

// Draw issues one DrawTriangles sampling from the atlas image. A nil opts
// gets atlas-friendly defaults (clamp-to-edge addressing).
func (m *Mesh) Draw(dst, atlas *ebiten.Image, opts *ebiten.DrawTrianglesOptions) {
	if opts == nil {
		opts = &ebiten.DrawTrianglesOptions{Address: ebiten.AddressClampToZero}
	}
	dst.DrawTriangles(m.Vertices, m.Indices, atlas, opts)
}
