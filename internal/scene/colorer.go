package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"trirast/internal/raster"
)

// NamedColorer is a colorer offered in the picker and the config file.
type NamedColorer struct {
	Name string
	Desc string
	Fn   raster.Colorer // nil draws opaque white
}

func (c NamedColorer) Title() string       { return c.Name }
func (c NamedColorer) Description() string { return c.Desc }
func (c NamedColorer) FilterValue() string { return c.Name }

var (
	warm = colorful.Color{R: 1, G: 0.35, B: 0.2}
	cool = colorful.Color{R: 0.1, G: 0.45, B: 1}
)

var colorers = []NamedColorer{
	{Name: "white", Desc: "opaque white", Fn: nil},
	{Name: "uv", Desc: "bounding-box gradient", Fn: uvColorer},
	{Name: "vertex", Desc: "interpolated vertex colors", Fn: vertexColorer},
	{Name: "rainbow", Desc: "hue across u", Fn: rainbowColorer},
	{Name: "lab", Desc: "Lab blend across v", Fn: labColorer},
	{Name: "checker", Desc: "8x8 checkerboard", Fn: checkerColorer},
}

// Colorers lists the built-in colorers in picker order.
func Colorers() []NamedColorer {
	return append([]NamedColorer(nil), colorers...)
}

// LookupColorer finds a built-in colorer by name.
func LookupColorer(name string) (NamedColorer, bool) {
	for _, c := range colorers {
		if c.Name == name {
			return c, true
		}
	}
	return NamedColorer{}, false
}

func uvColorer(uv raster.Point, _ []float64) raster.Tile {
	return raster.RGB(uv.X, uv.Y, 1-uv.X)
}

// vertexColorer reads attributes as r, g, b.
func vertexColorer(_ raster.Point, attrs []float64) raster.Tile {
	if len(attrs) < 3 {
		return raster.White
	}
	return raster.RGB(attrs[0], attrs[1], attrs[2])
}

func rainbowColorer(uv raster.Point, _ []float64) raster.Tile {
	h := math.Mod(uv.X*360, 360)
	if h < 0 {
		h += 360
	}
	return raster.FromColorful(colorful.Hsv(h, 0.85, 1))
}

func labColorer(uv raster.Point, _ []float64) raster.Tile {
	t := math.Max(0, math.Min(1, uv.Y))
	return raster.FromColorful(warm.BlendLab(cool, t))
}

func checkerColorer(uv raster.Point, _ []float64) raster.Tile {
	if (int(math.Floor(uv.X*8))+int(math.Floor(uv.Y*8)))%2 == 0 {
		return raster.White
	}
	return raster.RGB(0.35, 0.35, 0.4)
}
