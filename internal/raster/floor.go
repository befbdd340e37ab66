package raster

// FloorPieces classifies the triangle for the edge-counting inside test.
//
// Take the vertices owning the min-x and max-x extremes. If the remaining
// vertex lies above the line through them, or either x extreme is tied (one
// edge is vertical), the triangle has one floor piece below its interior;
// otherwise two.
func (t *Triangle) FloorPieces() (int, error) {
	if t.Degenerate() {
		return 0, ErrDegenerateTriangle
	}
	if t.minX.Tied() || t.maxX.Tied() {
		return 1, nil
	}
	lo, hi := t.points[t.minX.Index], t.points[t.maxX.Index]
	other := t.points[3-t.minX.Index-t.maxX.Index]
	if other.IsAboveLine(lo, hi) {
		return 1, nil
	}
	return 2, nil
}

// CoversByFloor reports whether p lies above exactly pieces of the three
// edges. pieces comes from FloorPieces. Points outside the triangle's x span
// are never covered: beyond the end vertices the extended edges form wedges
// that would otherwise count as inside.
func (t *Triangle) CoversByFloor(p Point, pieces int) bool {
	if p.X < t.points[t.minX.Index].X || p.X > t.points[t.maxX.Index].X {
		return false
	}
	n := 0
	if p.IsAboveLine(t.points[0], t.points[1]) {
		n++
	}
	if p.IsAboveLine(t.points[0], t.points[2]) {
		n++
	}
	if p.IsAboveLine(t.points[1], t.points[2]) {
		n++
	}
	return n == pieces
}
