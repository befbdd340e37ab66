package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"trirast/internal/raster"
)

// Kinds lists the built-in scene layouts.
var Kinds = []string{"spin", "quad", "fan"}

// maxAttempts bounds the retries for a non-degenerate random triangle.
const maxAttempts = 16

// Scene is a set of triangles spinning about a common pivot. Vertices are in
// framebuffer tile coordinates.
type Scene struct {
	kind      string
	width     int
	height    int
	triangles []*raster.Triangle
	pivot     raster.Point
	rotation  float64 // radians per Step
	colorer   NamedColorer
	rng       *rand.Rand
	frame     int
}

// New builds a scene of the given kind sized for a width×height buffer.
func New(kind string, width, height int, rotation float64, c NamedColorer, rng *rand.Rand) (*Scene, error) {
	s := &Scene{
		kind:     kind,
		width:    width,
		height:   height,
		rotation: rotation,
		colorer:  c,
		rng:      rng,
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) build() error {
	s.triangles = s.triangles[:0]
	w, h := float64(s.width), float64(s.height)
	switch s.kind {
	case "spin":
		t, err := s.randomTriangle(w, h)
		if err != nil {
			return err
		}
		s.triangles = append(s.triangles, t)
	case "quad":
		// two triangles sharing the diagonal of a centred square
		cx, cy := w/2, h/2
		r := math.Min(w, h) * 0.35
		a, b := raster.Pt(cx-r, cy-r), raster.Pt(cx+r, cy-r)
		c, d := raster.Pt(cx+r, cy+r), raster.Pt(cx-r, cy+r)
		for _, p := range [][3]raster.Point{{a, b, c}, {a, c, d}} {
			t, err := s.triangle(p[0], p[1], p[2])
			if err != nil {
				return err
			}
			s.triangles = append(s.triangles, t)
		}
	case "fan":
		cx, cy := w/2, h/2
		r := math.Min(w, h) * 0.45
		const blades = 5
		for i := 0; i < blades; i++ {
			a0 := 2 * math.Pi * float64(i) / blades
			a1 := a0 + math.Pi/blades
			t, err := s.triangle(raster.Pt(cx, cy),
				raster.Pt(cx+r*math.Cos(a0), cy+r*math.Sin(a0)),
				raster.Pt(cx+r*math.Cos(a1), cy+r*math.Sin(a1)))
			if err != nil {
				return err
			}
			s.triangles = append(s.triangles, t)
		}
	default:
		return fmt.Errorf("scene: unknown kind %q", s.kind)
	}
	s.pivot = s.centroid()
	return nil
}

// randomTriangle picks vertices uniformly inside the buffer.
func (s *Scene) randomTriangle(w, h float64) (*raster.Triangle, error) {
	for range maxAttempts {
		t, err := s.triangle(
			raster.Pt(s.rng.Float64()*w, s.rng.Float64()*h),
			raster.Pt(s.rng.Float64()*w, s.rng.Float64()*h),
			raster.Pt(s.rng.Float64()*w, s.rng.Float64()*h))
		if err != nil {
			return nil, err
		}
		if !t.Degenerate() {
			return t, nil
		}
	}
	return nil, fmt.Errorf("scene: %w after %d attempts", raster.ErrDegenerateTriangle, maxAttempts)
}

// triangle builds a triangle carrying a random RGB attribute per vertex.
func (s *Scene) triangle(p0, p1, p2 raster.Point) (*raster.Triangle, error) {
	var attrs [3][]float64
	for i := range attrs {
		c := colorful.Hsv(s.rng.Float64()*360, 0.8, 1)
		attrs[i] = []float64{c.R, c.G, c.B}
	}
	return raster.NewTriangle(p0, p1, p2,
		raster.WithAttributes(attrs[0], attrs[1], attrs[2]),
		raster.WithColorer(s.colorer.Fn))
}

func (s *Scene) centroid() raster.Point {
	var c raster.Point
	if len(s.triangles) == 0 {
		return c
	}
	for _, t := range s.triangles {
		c = c.Add(t.Centroid())
	}
	n := float64(len(s.triangles))
	return raster.Pt(c.X/n, c.Y/n)
}

func (s *Scene) Kind() string                  { return s.kind }
func (s *Scene) Triangles() []*raster.Triangle { return s.triangles }
func (s *Scene) Pivot() raster.Point           { return s.pivot }
func (s *Scene) Rotation() float64             { return s.rotation }
func (s *Scene) Colorer() NamedColorer         { return s.colorer }
func (s *Scene) Frame() int                    { return s.frame }
func (s *Scene) SetRotation(radians float64)   { s.rotation = radians }

// SetColorer applies c to every triangle.
func (s *Scene) SetColorer(c NamedColorer) {
	s.colorer = c
	for _, t := range s.triangles {
		t.SetColorer(c.Fn)
	}
}

// Add appends a triangle with the scene's colorer. The pivot is kept.
func (s *Scene) Add(p0, p1, p2 raster.Point) (*raster.Triangle, error) {
	t, err := s.triangle(p0, p1, p2)
	if err != nil {
		return nil, err
	}
	s.triangles = append(s.triangles, t)
	return t, nil
}

// Reset rebuilds the scene with fresh random values.
func (s *Scene) Reset() error {
	s.frame = 0
	return s.build()
}

// Step advances one frame: every vertex turns about the pivot.
func (s *Scene) Step() {
	s.frame++
	if s.rotation == 0 {
		return
	}
	for _, t := range s.triangles {
		t.Transform(func(p raster.Point) raster.Point {
			return p.Rotate(s.pivot, s.rotation)
		})
	}
}

// Translate moves every triangle and the pivot.
func (s *Scene) Translate(d raster.Point) {
	s.pivot = s.pivot.Add(d)
	for _, t := range s.triangles {
		t.Transform(func(p raster.Point) raster.Point { return p.Add(d) })
	}
}

// Resize rescales the scene to a width×height buffer.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 || s.width <= 0 || s.height <= 0 {
		return
	}
	sx := float64(width) / float64(s.width)
	sy := float64(height) / float64(s.height)
	scale := func(p raster.Point) raster.Point { return raster.Pt(p.X*sx, p.Y*sy) }
	for _, t := range s.triangles {
		t.Transform(scale)
	}
	s.pivot = scale(s.pivot)
	s.width, s.height = width, height
}

// Render clears fb and draws every triangle. Degenerate triangles are
// logged and skipped.
func (s *Scene) Render(fb *raster.FrameBuffer) (drawn, skipped int) {
	fb.Clear()
	for i, t := range s.triangles {
		n, err := fb.DrawTriangle(t)
		if errors.Is(err, raster.ErrDegenerateTriangle) {
			raster.Logger().Debug("scene: skipped triangle", "index", i, "frame", s.frame)
			skipped++
			continue
		}
		drawn += n
	}
	return drawn, skipped
}
