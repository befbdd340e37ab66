package raster

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Tile is one framebuffer cell: straight (non-premultiplied) RGBA with every
// channel in [0, 1]. A = 1 is opaque, A = 0 fully transparent.
type Tile struct {
	R, G, B, A float64
}

var (
	// Background is the value of every cell in a fresh or cleared FrameBuffer.
	Background = Tile{R: 0, G: 0, B: 0, A: 1}
	// White is the base tile of triangles drawn without a Colorer.
	White = Tile{R: 1, G: 1, B: 1, A: 1}
)

// RGB returns an opaque tile.
func RGB(r, g, b float64) Tile {
	return Tile{R: r, G: g, B: b, A: 1}
}

// Clamped returns t with each channel limited to [0, 1]. NaN becomes 0.
func (t Tile) Clamped() Tile {
	return Tile{R: clamp01(t.R), G: clamp01(t.G), B: clamp01(t.B), A: clamp01(t.A)}
}

// IsBlack reports whether the color channels are all zero, ignoring alpha.
func (t Tile) IsBlack() bool {
	return t.R == 0 && t.G == 0 && t.B == 0
}

// Colorful converts the color channels to a go-colorful color.
func (t Tile) Colorful() colorful.Color {
	c := t.Clamped()
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex returns the color channels as "#rrggbb".
func (t Tile) Hex() string {
	return t.Colorful().Hex()
}

// Over returns the tile as seen over an opaque black background.
func (t Tile) Over() Tile {
	c := t.Clamped()
	return Tile{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: 1}
}

// FromColorful builds an opaque tile from a go-colorful color.
func FromColorful(c colorful.Color) Tile {
	c = c.Clamped()
	return Tile{R: c.R, G: c.G, B: c.B, A: 1}
}

// RGBA implements color.Color.
func (t Tile) RGBA() (r, g, b, a uint32) {
	c := t.Clamped()
	a = uint32(c.A*0xffff + 0.5)
	r = uint32(c.R*c.A*0xffff + 0.5)
	g = uint32(c.G*c.A*0xffff + 0.5)
	b = uint32(c.B*c.A*0xffff + 0.5)
	return
}

var _ color.Color = Tile{}

func clamp01(v float64) float64 {
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
