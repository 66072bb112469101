// Package moss builds static vertex and index buffers for large amounts of
// textured quads sampled from a single texture atlas.
//
// Sprite batchers rebuild and re-upload their geometry every frame. For big
// tile maps that never (or rarely) change, that work is wasted. A Builder
// instead preallocates one flat vertex buffer sized for a fixed quad count,
// writes each quad's four vertices at a slot computed from its index, and
// hands the host read-only views for upload. Overwriting a quad later
// produces exactly the bytes a full rebuild would, so the host can re-upload
// just the touched sub-range.
//
// Coordinate conventions: a quad's anchor is its first corner, and corners
// follow in the order anchor, anchor+(w,0), anchor+(w,h), anchor+(0,h). Under
// the usual Y-down screen convention these read top-left, top-right,
// bottom-right, bottom-left, and the fixed per-quad index pattern
// {0,1,2, 2,3,0} winds both triangles clockwise. The library never flips
// axes; orientation fixes go through UVFlip only.
//
// UVs map the source rectangle straight onto the quad: the anchor corner
// samples the rectangle's (x,y) corner. Hosts that want OpenGL's bottom-up
// default pass FlipVertical.
//
// Vertex records are produced through a VertexFunc conversion, so a builder
// can emit any host vertex layout directly into its buffer. Use Canonical
// for the plain {position, UV, color} record.
//
// Builders are plain single-threaded data structures: no locking, no
// goroutines, no I/O. Concurrent use requires external synchronization.
package moss
