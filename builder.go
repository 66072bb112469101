package moss

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Largest capacity whose top vertex index (quadLimit*4 - 1) still fits in a
// uint32 index buffer.
const maxQuadLimit = 1 << 30

// Builder owns one contiguous, preallocated vertex buffer (and, when
// indexed, its index buffer) for a fixed number of quads. Quad i always
// occupies the vertex slice [i*vpq, (i+1)*vpq), so writes never move, never
// reallocate and never touch a neighbor. Overwriting is idempotent: the
// buffer after Set is byte-identical to a fresh build with the same
// arguments, which is what makes ranged re-uploads safe.
//
// The index buffer is a pure function of the capacity, computed once at
// construction and never mutated.
type Builder[V any] struct {
	atlas     mgl32.Vec2
	halfTexel bool
	quadLimit int
	vpq       int
	convert   VertexFunc[V]
	verts     []V
	inds      []uint32 // nil when non-indexed
	cursor    int      // next Push slot
}

// New allocates an indexed builder: quadLimit*4 vertices plus the full
// uint32 index buffer.
func New[V any](atlas mgl32.Vec2, halfTexel bool, quadLimit int, fn VertexFunc[V]) (*Builder[V], error) {
	return newBuilder(atlas, halfTexel, quadLimit, true, fn)
}

// NewUnindexed allocates a non-indexed builder: quadLimit*6 vertices, each
// quad expanded into two unshared triangles, no index buffer.
func NewUnindexed[V any](atlas mgl32.Vec2, halfTexel bool, quadLimit int, fn VertexFunc[V]) (*Builder[V], error) {
	return newBuilder(atlas, halfTexel, quadLimit, false, fn)
}

func newBuilder[V any](atlas mgl32.Vec2, halfTexel bool, quadLimit int, indexed bool, fn VertexFunc[V]) (*Builder[V], error) {
	if fn == nil {
		return nil, ErrNilVertexFunc
	}
	if atlas.X() <= 0 || atlas.Y() <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidAtlasSize, atlas.X(), atlas.Y())
	}
	if quadLimit <= 0 || quadLimit > maxQuadLimit {
		return nil, fmt.Errorf("%w: quad limit %d", ErrInvalidCapacity, quadLimit)
	}
	b := &Builder[V]{
		atlas:     atlas,
		halfTexel: halfTexel,
		quadLimit: quadLimit,
		vpq:       VerticesPerQuad(indexed),
		convert:   fn,
	}
	b.verts = make([]V, quadLimit*b.vpq)
	if indexed {
		b.inds = QuadIndices(quadLimit)
	}
	return b, nil
}

// FromBuffers adopts existing storage instead of allocating, for hosts that
// hand out mapped or pooled slices. A nil index slice selects non-indexed
// mode; otherwise the index length must match the vertex capacity. Contents
// are kept as-is.
func FromBuffers[V any](atlas mgl32.Vec2, halfTexel bool, verts []V, inds []uint32, fn VertexFunc[V]) (*Builder[V], error) {
	if fn == nil {
		return nil, ErrNilVertexFunc
	}
	if atlas.X() <= 0 || atlas.Y() <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidAtlasSize, atlas.X(), atlas.Y())
	}
	indexed := inds != nil
	vpq := VerticesPerQuad(indexed)
	if len(verts) == 0 || len(verts)%vpq != 0 {
		return nil, fmt.Errorf("%w: %d vertices, want a positive multiple of %d",
			ErrInvalidCapacity, len(verts), vpq)
	}
	quadLimit := len(verts) / vpq
	if quadLimit > maxQuadLimit {
		return nil, fmt.Errorf("%w: quad limit %d", ErrInvalidCapacity, quadLimit)
	}
	if indexed && len(inds) != quadLimit*indsPerQuad {
		return nil, fmt.Errorf("%w: %d indices, want %d",
			ErrInvalidCapacity, len(inds), quadLimit*indsPerQuad)
	}
	return &Builder[V]{
		atlas:     atlas,
		halfTexel: halfTexel,
		quadLimit: quadLimit,
		vpq:       vpq,
		convert:   fn,
		verts:     verts,
		inds:      inds,
	}, nil
}

// Set writes quad i from any parameter kind. The slot may be written any
// number of times, in any order, before or after Finalize.
func (b *Builder[V]) Set(i int, p QuadParams) error {
	src, flip := p.Source()
	return b.write(i, p.Corners(), p.Tint(), src, flip)
}

// SetTile writes quad i from t, skipping the interface indirection of Set.
func (b *Builder[V]) SetTile(i int, t Tile) error {
	return b.write(i, t.Corners(), t.Color, t.Src, t.Flip)
}

// SetSizedTile writes quad i from t, skipping the interface indirection.
func (b *Builder[V]) SetSizedTile(i int, t SizedTile) error {
	return b.write(i, t.Corners(), t.Color, t.Src, t.Flip)
}

// Push writes the next slot after the highest one Push has used, and returns
// it. Set never moves the cursor, so mixed callers should pick one style per
// builder.
func (b *Builder[V]) Push(p QuadParams) (int, error) {
	if err := b.Set(b.cursor, p); err != nil {
		return 0, err
	}
	b.cursor++
	return b.cursor - 1, nil
}

// write validates everything before touching the buffer: a failed call
// leaves every slot, including slot i, exactly as it was.
func (b *Builder[V]) write(i int, corners [4]mgl32.Vec2, tint Color, src Rect, flip UVFlip) error {
	if i < 0 || i >= b.quadLimit {
		return fmt.Errorf("%w: quad %d, limit %d", ErrIndexOutOfBounds, i, b.quadLimit)
	}
	if err := src.validate(b.atlas); err != nil {
		return err
	}
	u0, v0, u1, v1 := uvRect(src, b.atlas, flip, b.halfTexel)
	q := assemble(corners, tint, u0, v0, u1, v1)

	out := b.verts[i*b.vpq : (i+1)*b.vpq]
	if b.vpq == vertsPerQuad {
		out[0] = b.convert(q[0])
		out[1] = b.convert(q[1])
		out[2] = b.convert(q[2])
		out[3] = b.convert(q[3])
		return nil
	}
	// Expanded order TL,TR,BR, BR,BL,TL mirrors the index pattern.
	tl, tr, br, bl := b.convert(q[0]), b.convert(q[1]), b.convert(q[2]), b.convert(q[3])
	out[0], out[1], out[2] = tl, tr, br
	out[3], out[4], out[5] = br, bl, tl
	return nil
}

// Vertices returns the whole vertex buffer. The slice is a view into the
// builder's storage, not a copy; treat it as read-only.
func (b *Builder[V]) Vertices() []V { return b.verts }

// VerticesRange returns the sub-view [start, end) in vertex units. Callers
// compute the bounds from the lowest and highest touched quad index times
// VerticesPerQuad, then re-upload exactly those records.
func (b *Builder[V]) VerticesRange(start, end int) ([]V, error) {
	if start < 0 || end < start || end > len(b.verts) {
		return nil, fmt.Errorf("%w: vertex range [%d,%d) of %d",
			ErrIndexOutOfBounds, start, end, len(b.verts))
	}
	return b.verts[start:end:end], nil
}

// Indices returns the index buffer view, nil for non-indexed builders.
func (b *Builder[V]) Indices() []uint32 { return b.inds }

// Finalize returns the vertex and index buffers as they stand. Views, not
// copies: the builder stays mutable, and later Set calls are visible through
// the returned slices. Call it as often as needed.
func (b *Builder[V]) Finalize() ([]V, []uint32) { return b.verts, b.inds }

// Clear zeroes every vertex and rewinds Push. The index buffer depends only
// on the capacity and stays put.
func (b *Builder[V]) Clear() {
	clear(b.verts)
	b.cursor = 0
}

// QuadLimit returns the capacity fixed at construction.
func (b *Builder[V]) QuadLimit() int { return b.quadLimit }

// VertexLimit returns the vertex buffer length, QuadLimit*VerticesPerQuad.
func (b *Builder[V]) VertexLimit() int { return len(b.verts) }

// VerticesPerQuad returns 4 for indexed builders, 6 for non-indexed.
func (b *Builder[V]) VerticesPerQuad() int { return b.vpq }

// Indexed reports whether the builder carries an index buffer.
func (b *Builder[V]) Indexed() bool { return b.inds != nil }

// AtlasSize returns the atlas dimensions every source rect is checked
// against.
func (b *Builder[V]) AtlasSize() mgl32.Vec2 { return b.atlas }

// HalfTexel reports whether UV edges are inset by half a texel.
func (b *Builder[V]) HalfTexel() bool { return b.halfTexel }
