package raster

import "math"

// Point is a 2D coordinate. All operations return a new Point.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsAboveLine reports whether p lies strictly above the line through a and b.
// A vertical line (a.X == b.X) has no "above"; the result is false.
func (p Point) IsAboveLine(a, b Point) bool {
	if a.X == b.X {
		return false
	}
	slope := (b.Y - a.Y) / (b.X - a.X)
	return p.Y > slope*(p.X-a.X)+a.Y
}

// Rotate returns p rotated counter-clockwise about pivot by angle radians.
func (p Point) Rotate(pivot Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx, dy := p.X-pivot.X, p.Y-pivot.Y
	return Point{
		X: dx*cos - dy*sin + pivot.X,
		Y: dx*sin + dy*cos + pivot.Y,
	}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// approxEqual compares two coordinates within Epsilon, scaled for large magnitudes.
func approxEqual(a, b float64) bool {
	d := math.Abs(a - b)
	if d <= Epsilon {
		return true
	}
	return d <= Epsilon*math.Max(math.Abs(a), math.Abs(b))
}
