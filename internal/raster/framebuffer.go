package raster

import (
	"fmt"
	"math"
)

// coverEpsilon widens the closed inside test so samples exactly on an edge
// survive rounding in w2 = 1 - w0 - w1.
const coverEpsilon = 1e-12

// Grid is the read-only view of a FrameBuffer handed to a Sink.
type Grid interface {
	Width() int
	Height() int
	Name() string
	At(x, y int) Tile
}

// Sink consumes a finished frame. Present must not retain g.
type Sink interface {
	Present(g Grid) error
}

// FrameBuffer is a fixed-size grid of Tiles. Row 0 holds y = 0.
//
// A FrameBuffer is not safe for concurrent use.
type FrameBuffer struct {
	content [][]Tile
	width   int
	height  int
	name    string

	samples  int
	coverage CoverageMode

	attrs []float64 // interpolation scratch, reused across pixels
}

// New allocates a width×height buffer filled with Background.
func New(width, height int, opts ...Option) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	fb := &FrameBuffer{
		width:   width,
		height:  height,
		samples: DefaultSupersample,
	}
	for _, opt := range opts {
		opt(fb)
	}
	fb.content = make([][]Tile, height)
	for y := range fb.content {
		fb.content[y] = make([]Tile, width)
	}
	fb.Clear()
	Logger().Info("framebuffer allocated", "name", fb.name, "width", width, "height", height,
		"supersample", fb.samples, "coverage", fb.coverage.String())
	return fb, nil
}

func (fb *FrameBuffer) Width() int   { return fb.width }
func (fb *FrameBuffer) Height() int  { return fb.height }
func (fb *FrameBuffer) Name() string { return fb.name }

// Supersample returns N of the N×N coverage sub-grid.
func (fb *FrameBuffer) Supersample() int { return fb.samples }

func (fb *FrameBuffer) Coverage() CoverageMode { return fb.coverage }

// At returns the tile at (x, y), or the zero Tile when out of range.
func (fb *FrameBuffer) At(x, y int) Tile {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return Tile{}
	}
	return fb.content[y][x]
}

// Clear resets every cell to Background.
func (fb *FrameBuffer) Clear() {
	for _, row := range fb.content {
		for x := range row {
			row[x] = Background
		}
	}
}

// DrawBuffer hands the grid to s. The grid is not modified.
func (fb *FrameBuffer) DrawBuffer(s Sink) error {
	return s.Present(fb)
}

// DrawPoint composites t into the cell containing p and reports whether a
// write happened. Points outside the buffer and fully transparent tiles are
// ignored.
//
// A cell whose color channels are all zero counts as untouched: the source
// is blended with itself, so first-touch edges are not darkened by the
// background. The stored alpha is replaced by the source alpha.
func (fb *FrameBuffer) DrawPoint(p Point, t Tile) bool {
	if !(p.X >= 0 && p.X < float64(fb.width) && p.Y >= 0 && p.Y < float64(fb.height)) {
		return false
	}
	src := t.Clamped()
	if src.A <= 0 {
		return false
	}
	x, y := int(p.X), int(p.Y)
	dst := fb.content[y][x]
	if dst.IsBlack() {
		dst = src
	}
	a := src.A
	fb.content[y][x] = Tile{
		R: src.R*a + dst.R*(1-a),
		G: src.G*a + dst.G*(1-a),
		B: src.B*a + dst.B*(1-a),
		A: a,
	}
	return true
}

// DrawTriangle rasterizes t with N×N supersampled coverage and returns the
// number of pixels written. Degenerate triangles draw nothing and return
// ErrDegenerateTriangle.
func (fb *FrameBuffer) DrawTriangle(t *Triangle) (int, error) {
	d := t.denominator()
	if math.Abs(d) < Epsilon {
		Logger().Debug("skipping degenerate triangle", "points", t.points)
		return 0, ErrDegenerateTriangle
	}
	pieces := 0
	if fb.coverage == CoverageFloor {
		pieces, _ = t.FloorPieces()
	}

	minX, minY, maxX, maxY := t.Bounds()
	x0f := math.Max(math.Floor(minX), 0)
	y0f := math.Max(math.Floor(minY), 0)
	x1f := math.Min(math.Floor(maxX), float64(fb.width-1))
	y1f := math.Min(math.Floor(maxY), float64(fb.height-1))
	if !(x0f <= x1f && y0f <= y1f) {
		return 0, nil
	}
	x0, y0, x1, y1 := int(x0f), int(y0f), int(x1f), int(y1f)

	n := fb.samples
	step := 1 / float64(n)
	total := float64(n * n)
	drawn := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			covered := 0
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					s := Point{X: float64(x) + float64(i)*step, Y: float64(y) + float64(j)*step}
					if fb.coverage == CoverageFloor {
						if t.CoversByFloor(s, pieces) {
							covered++
						}
					} else if t.weights(s, d).Inside(coverEpsilon) {
						covered++
					}
				}
			}
			if covered == 0 {
				continue
			}
			tile := fb.baseTile(t, d, x, y, minX, minY)
			tile.A *= float64(covered) / total
			if fb.DrawPoint(Point{X: float64(x), Y: float64(y)}, tile) {
				drawn++
			}
		}
	}
	return drawn, nil
}

// baseTile evaluates the colorer for pixel (x, y), or returns White.
func (fb *FrameBuffer) baseTile(t *Triangle, d float64, x, y int, minX, minY float64) Tile {
	if t.colorer == nil {
		return White
	}
	uv := Point{}
	if t.width > 0 {
		uv.X = (float64(x) - minX) / t.width
	}
	if t.height > 0 {
		uv.Y = (float64(y) - minY) / t.height
	}
	var attrs []float64
	if fb.coverage == CoverageBarycentric {
		w := t.weights(Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}, d)
		fb.attrs = t.Interpolate(w, fb.attrs)
		attrs = fb.attrs
	}
	return t.colorer(uv, attrs)
}
