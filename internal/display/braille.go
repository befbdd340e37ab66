package display

import "trirast/internal/raster"

// brailleBuf packs tiles into braille cells, 2x4 dots per cell, and keeps
// the average color of the lit dots of each cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	sum  [][]raster.Tile
	n    [][]int
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	sum := make([][]raster.Tile, h)
	n := make([][]int, h)
	for i := range m {
		m[i] = make([]uint8, w)
		sum[i] = make([]raster.Tile, w)
		n[i] = make([]int, w)
	}
	return &brailleBuf{w: w, h: h, m: m, sum: sum, n: n}
}

// brailleBits maps the dot position inside a cell to its bit; rows top-down.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel lights the dot at micro coords (mx, my) with color c.
func (b *brailleBuf) setPixel(mx, my int, c raster.Tile) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
	s := &b.sum[cy][cx]
	s.R += c.R
	s.G += c.G
	s.B += c.B
	b.n[cy][cx]++
}

// cell returns the glyph and average color of cell (cx, cy). A blank cell
// returns ' ' and ok = false.
func (b *brailleBuf) cell(cx, cy int) (r rune, c raster.Tile, ok bool) {
	mask := b.m[cy][cx]
	if mask == 0 {
		return ' ', raster.Background, false
	}
	k := float64(b.n[cy][cx])
	s := b.sum[cy][cx]
	return rune(0x2800 + int(mask)), raster.RGB(s.R/k, s.G/k, s.B/k), true
}
