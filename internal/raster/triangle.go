package raster

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance for extreme ties and for the degenerate-area test.
const Epsilon = 1e-9

// Colorer maps a covered pixel to its base color. uv is the pixel position
// relative to the triangle's bounding box, attrs the per-vertex attributes
// interpolated at the pixel centre (nil when the triangle has none).
//
// A Colorer must be pure and must not retain attrs: the slice is reused for
// the next pixel.
type Colorer func(uv Point, attrs []float64) Tile

// Extreme identifies the vertex holding a minimum or maximum coordinate.
// Tie is the index of a second vertex sharing that coordinate within
// Epsilon, or -1.
type Extreme struct {
	Index int
	Tie   int
}

// Tied reports whether two vertices share the extreme.
func (e Extreme) Tied() bool { return e.Tie >= 0 }

// Weights are barycentric coordinates relative to a triangle's vertices.
type Weights [3]float64

// Inside reports whether all weights are >= -tol.
func (w Weights) Inside(tol float64) bool {
	return w[0] >= -tol && w[1] >= -tol && w[2] >= -tol
}

// Triangle is three points plus cached geometry used while rasterizing.
// The cached extremes, width and height always match the current points.
//
// A Triangle is not safe for concurrent use.
type Triangle struct {
	points [3]Point

	minX, maxX Extreme
	minY, maxY Extreme
	width      float64
	height     float64

	attrs   [3][]float64 // nil when the triangle carries no attributes
	colorer Colorer
}

// TriangleOption configures optional Triangle data.
type TriangleOption func(*Triangle)

// WithAttributes attaches one attribute vector per vertex. The vectors must
// have equal length.
func WithAttributes(a0, a1, a2 []float64) TriangleOption {
	return func(t *Triangle) {
		t.attrs = [3][]float64{a0, a1, a2}
	}
}

// WithColorer sets the per-pixel color callback.
func WithColorer(c Colorer) TriangleOption {
	return func(t *Triangle) {
		t.colorer = c
	}
}

// NewTriangle builds a triangle and computes its extremes.
func NewTriangle(p0, p1, p2 Point, opts ...TriangleOption) (*Triangle, error) {
	t := &Triangle{points: [3]Point{p0, p1, p2}}
	for _, opt := range opts {
		opt(t)
	}
	if t.hasAttributes() {
		n0, n1, n2 := len(t.attrs[0]), len(t.attrs[1]), len(t.attrs[2])
		if n0 != n1 || n1 != n2 {
			return nil, fmt.Errorf("%w: %d, %d, %d", ErrMismatchedAttributeLength, n0, n1, n2)
		}
	}
	t.recomputeExtremes()
	return t, nil
}

func (t *Triangle) hasAttributes() bool {
	return t.attrs[0] != nil || t.attrs[1] != nil || t.attrs[2] != nil
}

// Point returns vertex i (0, 1 or 2).
func (t *Triangle) Point(i int) Point { return t.points[i] }

// Points returns a copy of the three vertices.
func (t *Triangle) Points() [3]Point { return t.points }

// SetPoint replaces vertex i and recomputes the cached geometry.
func (t *Triangle) SetPoint(i int, p Point) {
	t.points[i] = p
	t.recomputeExtremes()
}

// Transform replaces every vertex with f(vertex) and recomputes once.
func (t *Triangle) Transform(f func(Point) Point) {
	for i := range t.points {
		t.points[i] = f(t.points[i])
	}
	t.recomputeExtremes()
}

func (t *Triangle) MinX() Extreme { return t.minX }
func (t *Triangle) MaxX() Extreme { return t.maxX }
func (t *Triangle) MinY() Extreme { return t.minY }
func (t *Triangle) MaxY() Extreme { return t.maxY }

// Width is the x extent of the bounding box.
func (t *Triangle) Width() float64 { return t.width }

// Height is the y extent of the bounding box.
func (t *Triangle) Height() float64 { return t.height }

// Bounds returns the bounding box corners.
func (t *Triangle) Bounds() (minX, minY, maxX, maxY float64) {
	return t.points[t.minX.Index].X, t.points[t.minY.Index].Y,
		t.points[t.maxX.Index].X, t.points[t.maxY.Index].Y
}

func (t *Triangle) Centroid() Point {
	p := t.points
	return Point{X: (p[0].X + p[1].X + p[2].X) / 3, Y: (p[0].Y + p[1].Y + p[2].Y) / 3}
}

// Attributes returns the length of the per-vertex attribute vectors.
func (t *Triangle) Attributes() int { return len(t.attrs[0]) }

// Attribute returns vertex i's attribute vector.
func (t *Triangle) Attribute(i int) []float64 { return t.attrs[i] }

func (t *Triangle) Colorer() Colorer { return t.colorer }

// SetColorer replaces the color callback; nil draws opaque white.
func (t *Triangle) SetColorer(c Colorer) { t.colorer = c }

// recomputeExtremes scans the vertices once per axis. A vertex within
// Epsilon of the current extreme becomes its tie; one past it by more than
// Epsilon takes over and clears the tie.
func (t *Triangle) recomputeExtremes() {
	t.minX, t.maxX = Extreme{Tie: -1}, Extreme{Tie: -1}
	t.minY, t.maxY = Extreme{Tie: -1}, Extreme{Tie: -1}
	for i := 1; i < 3; i++ {
		p := t.points[i]
		t.maxX = track(t.maxX, i, p.X, t.points[t.maxX.Index].X, 1)
		t.minX = track(t.minX, i, p.X, t.points[t.minX.Index].X, -1)
		t.maxY = track(t.maxY, i, p.Y, t.points[t.maxY.Index].Y, 1)
		t.minY = track(t.minY, i, p.Y, t.points[t.minY.Index].Y, -1)
	}
	t.width = math.Abs(t.points[t.maxX.Index].X - t.points[t.minX.Index].X)
	t.height = math.Abs(t.points[t.maxY.Index].Y - t.points[t.minY.Index].Y)
}

func track(e Extreme, i int, v, cur, sign float64) Extreme {
	switch {
	case approxEqual(v, cur):
		if e.Tie < 0 {
			e.Tie = i
		}
	case sign*(v-cur) > 0:
		return Extreme{Index: i, Tie: -1}
	}
	return e
}

// denominator is twice the signed area of the triangle.
func (t *Triangle) denominator() float64 {
	p0, p1, p2 := t.points[0], t.points[1], t.points[2]
	return (p1.Y-p2.Y)*(p0.X-p2.X) + (p2.X-p1.X)*(p0.Y-p2.Y)
}

// Degenerate reports whether the triangle has (near) zero area.
func (t *Triangle) Degenerate() bool {
	return math.Abs(t.denominator()) < Epsilon
}

// Weights returns the barycentric coordinates of p. They sum to 1 under
// exact arithmetic.
func (t *Triangle) Weights(p Point) (Weights, error) {
	d := t.denominator()
	if math.Abs(d) < Epsilon {
		return Weights{}, ErrDegenerateTriangle
	}
	return t.weights(p, d), nil
}

func (t *Triangle) weights(p Point, d float64) Weights {
	p0, p1, p2 := t.points[0], t.points[1], t.points[2]
	w0 := ((p1.Y-p2.Y)*(p.X-p2.X) + (p2.X-p1.X)*(p.Y-p2.Y)) / d
	w1 := ((p2.Y-p0.Y)*(p.X-p2.X) + (p0.X-p2.X)*(p.Y-p2.Y)) / d
	return Weights{w0, w1, 1 - w0 - w1}
}

// Interpolate blends the vertex attributes with w into dst (reusing its
// storage) and returns it. Returns nil when the triangle has no attributes.
func (t *Triangle) Interpolate(w Weights, dst []float64) []float64 {
	if !t.hasAttributes() {
		return nil
	}
	dst = dst[:0]
	for k := range t.attrs[0] {
		dst = append(dst, w[0]*t.attrs[0][k]+w[1]*t.attrs[1][k]+w[2]*t.attrs[2][k])
	}
	return dst
}
