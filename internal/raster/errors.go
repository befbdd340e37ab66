package raster

import "errors"

var (
	// ErrDegenerateTriangle is returned when a triangle has (near) zero area
	// and barycentric weights are undefined.
	ErrDegenerateTriangle = errors.New("raster: degenerate triangle")

	// ErrMismatchedAttributeLength is returned by NewTriangle when the
	// per-vertex attribute vectors differ in length.
	ErrMismatchedAttributeLength = errors.New("raster: mismatched attribute length")

	// ErrInvalidSize is returned by New for non-positive dimensions.
	ErrInvalidSize = errors.New("raster: invalid framebuffer size")
)
