package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"trirast/internal/raster"
)

// asciiRamp shades tiles by luminance when the profile has no colors.
const asciiRamp = " .:-=+*#%@"

// litThreshold is the luminance above which a tile lights a braille dot.
const litThreshold = 0.2

var frameBorder = lipgloss.NormalBorder()

// Renderer turns a raster.Grid into terminal text. It implements
// raster.Sink: Present writes one framed frame to the output.
type Renderer struct {
	cfg     Config
	profile termenv.Profile
	out     *termenv.Output
}

// NewRenderer builds a renderer writing to w. An invalid profile name falls
// back to plain ASCII shading; call cfg.Validate first to reject it.
func NewRenderer(cfg Config, w io.Writer) *Renderer {
	r := &Renderer{}
	r.out = termenv.NewOutput(w)
	r.SetConfig(cfg)
	return r
}

// Config returns the current settings.
func (r *Renderer) Config() Config { return r.cfg }

// SetConfig replaces the settings.
func (r *Renderer) SetConfig(cfg Config) {
	if cfg.Glyph == "" {
		cfg.Glyph = " "
	}
	if cfg.GridInterval < 2 {
		cfg.GridInterval = 2
	}
	p, _ := parseProfile(cfg.Profile)
	r.cfg = cfg
	r.profile = p
}

// Output exposes the terminal output for screen control.
func (r *Renderer) Output() *termenv.Output { return r.out }

// Present writes the framed grid followed by a newline.
func (r *Renderer) Present(g raster.Grid) error {
	_, err := io.WriteString(r.out, r.Frame(g)+"\n")
	return err
}

var _ raster.Sink = (*Renderer)(nil)

// Fit returns the grid size that fills a cols×rows display area.
func (r *Renderer) Fit(cols, rows int) (width, height int) {
	if r.cfg.Border {
		cols -= 2
		rows -= 2
	}
	if r.cfg.Mode == ModeBraille {
		return max(1, cols*2), max(1, rows*4)
	}
	if r.cfg.GridMarkers {
		rows--
		cols -= len(strconv.Itoa(max(1, rows))) + 1
	}
	return max(1, cols/max(1, lipgloss.Width(r.cfg.Glyph))), max(1, rows)
}

// Frame renders the grid and, when Border is set, boxes it with the grid
// name in the top edge.
func (r *Renderer) Frame(g raster.Grid) string {
	body := r.Render(g)
	if !r.cfg.Border {
		return body
	}
	boxed := lipgloss.NewStyle().Border(frameBorder).BorderTop(false).Render(body)
	return titleBar(g.Name(), lipgloss.Width(boxed)) + "\n" + boxed
}

// titleBar is the top border edge of width w with name centred in it.
func titleBar(name string, w int) string {
	inner := w - 2
	if inner < 0 {
		inner = 0
	}
	label := ""
	if name != "" {
		label = " " + name + " "
	}
	if lipgloss.Width(label) > inner {
		label = ""
	}
	fill := inner - lipgloss.Width(label)
	left := fill / 2
	return frameBorder.TopLeft +
		strings.Repeat(frameBorder.Top, left) + label + strings.Repeat(frameBorder.Top, fill-left) +
		frameBorder.TopRight
}

// Render returns the grid body, one line per display row, without border.
func (r *Renderer) Render(g raster.Grid) string {
	if r.cfg.Mode == ModeBraille {
		return strings.Join(r.renderBraille(g), "\n")
	}
	return strings.Join(r.renderBlock(g), "\n")
}

// rowAt maps display line i to a grid row.
func (r *Renderer) rowAt(g raster.Grid, i int) int {
	if r.cfg.FlipY {
		return g.Height() - 1 - i
	}
	return i
}

func (r *Renderer) renderBlock(g raster.Grid) []string {
	w, h := g.Width(), g.Height()
	digits := len(strconv.Itoa(h))
	lines := make([]string, 0, h+1)
	var sb strings.Builder
	for i := 0; i < h; i++ {
		y := r.rowAt(g, i)
		sb.Reset()
		if r.cfg.GridMarkers {
			n := y + 1
			if n == 1 || n%r.cfg.GridInterval == 0 {
				fmt.Fprintf(&sb, "%*d┤", digits, n)
			} else {
				sb.WriteString(strings.Repeat(" ", digits) + "│")
			}
		}
		// consecutive cells of one color share a single escape sequence
		runStart := 0
		for x := 1; x <= w; x++ {
			if x < w && r.sameCell(g.At(x, y), g.At(runStart, y)) {
				continue
			}
			sb.WriteString(r.block(g.At(runStart, y), x-runStart))
			runStart = x
		}
		lines = append(lines, sb.String())
	}
	if r.cfg.GridMarkers {
		lines = append(lines, strings.Repeat(" ", digits)+"└"+r.ruler(w))
	}
	return lines
}

// ruler labels column 1 and every GridInterval-th column.
func (r *Renderer) ruler(w int) string {
	cw := lipgloss.Width(r.cfg.Glyph)
	buf := []rune(strings.Repeat("─", w*cw))
	next := 0
	for x := 0; x < w; x++ {
		n := x + 1
		if n != 1 && n%r.cfg.GridInterval != 0 {
			continue
		}
		label := strconv.Itoa(n)
		pos := x * cw
		if pos < next || pos+len(label) > len(buf) {
			continue
		}
		copy(buf[pos:], []rune(label))
		next = pos + len(label) + 1
	}
	return string(buf)
}

func (r *Renderer) sameCell(a, b raster.Tile) bool {
	if r.profile == termenv.Ascii {
		return shade(a) == shade(b)
	}
	return a.Over().Hex() == b.Over().Hex()
}

// block renders n adjacent cells of tile t.
func (r *Renderer) block(t raster.Tile, n int) string {
	if r.profile == termenv.Ascii {
		return strings.Repeat(string(shade(t)), n*lipgloss.Width(r.cfg.Glyph))
	}
	text := strings.Repeat(r.cfg.Glyph, n)
	return r.profile.String(text).Background(r.profile.Color(t.Over().Hex())).String()
}

func (r *Renderer) renderBraille(g raster.Grid) []string {
	w, h := g.Width(), g.Height()
	cw, ch := (w+1)/2, (h+3)/4
	br := newBrailleBuf(cw, ch)
	for i := 0; i < h; i++ {
		y := r.rowAt(g, i)
		for x := 0; x < w; x++ {
			t := g.At(x, y).Over()
			if luminance(t) >= litThreshold {
				br.setPixel(x, i, t)
			}
		}
	}
	lines := make([]string, ch)
	var sb strings.Builder
	for cy := 0; cy < ch; cy++ {
		sb.Reset()
		for cx := 0; cx < cw; cx++ {
			glyph, c, ok := br.cell(cx, cy)
			if !ok || r.profile == termenv.Ascii {
				sb.WriteRune(glyph)
				continue
			}
			sb.WriteString(r.profile.String(string(glyph)).Foreground(r.profile.Color(c.Hex())).String())
		}
		lines[cy] = sb.String()
	}
	return lines
}

func luminance(t raster.Tile) float64 {
	return 0.2126*t.R + 0.7152*t.G + 0.0722*t.B
}

// shade picks an ASCII ramp character for t as seen over black.
func shade(t raster.Tile) byte {
	l := luminance(t.Over())
	i := int(l*float64(len(asciiRamp)-1) + 0.5)
	i = max(0, min(len(asciiRamp)-1, i))
	return asciiRamp[i]
}
