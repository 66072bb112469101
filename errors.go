package moss

import "errors"

// All failures are caller errors, reported synchronously and without partial
// mutation; there is nothing transient to retry. Wrapped details are attached
// with fmt.Errorf, so match with errors.Is.
var (
	// ErrInvalidCapacity rejects a quad limit that is zero, negative, too
	// large to index, or adopted storage of mismatched length.
	ErrInvalidCapacity = errors.New("moss: invalid capacity")
	// ErrIndexOutOfBounds rejects a quad index or vertex range outside the
	// capacity fixed at construction.
	ErrIndexOutOfBounds = errors.New("moss: index out of bounds")
	// ErrInvalidSourceRect rejects a source rectangle not contained within
	// the atlas. Out-of-bounds sampling is never clamped.
	ErrInvalidSourceRect = errors.New("moss: invalid source rect")
	// ErrInvalidAtlasSize rejects non-positive atlas dimensions.
	ErrInvalidAtlasSize = errors.New("moss: invalid atlas size")
	// ErrNilVertexFunc rejects construction without a vertex conversion.
	ErrNilVertexFunc = errors.New("moss: nil vertex func")
)
