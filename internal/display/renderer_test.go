package display

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"trirast/internal/raster"
)

func asciiConfig() Config {
	cfg := DefaultConfig()
	cfg.Profile = "ascii"
	cfg.Border = false
	return cfg
}

func newGrid(t *testing.T, w, h int) *raster.FrameBuffer {
	t.Helper()
	fb, err := raster.New(w, h, raster.WithName("main"))
	if err != nil {
		t.Fatal(err)
	}
	return fb
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"braille", func(c *Config) { c.Mode = ModeBraille }, false},
		{"empty glyph", func(c *Config) { c.Glyph = "" }, true},
		{"interval one", func(c *Config) { c.GridInterval = 1 }, true},
		{"unknown mode", func(c *Config) { c.Mode = "sixel" }, true},
		{"unknown profile", func(c *Config) { c.Profile = "cga" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderBlockASCII(t *testing.T) {
	fb := newGrid(t, 3, 2)
	fb.DrawPoint(raster.Pt(0, 0), raster.White)

	tests := []struct {
		name  string
		flipY bool
		want  string
	}{
		{"y up", true, "      \n@@    "},
		{"y down", false, "@@    \n      "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := asciiConfig()
			cfg.FlipY = tt.flipY
			got := NewRenderer(cfg, &bytes.Buffer{}).Render(fb)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderBlockShadesAlpha(t *testing.T) {
	fb := newGrid(t, 1, 1)
	fb.DrawPoint(raster.Pt(0, 0), raster.Tile{R: 1, G: 1, B: 1, A: 0.5})
	got := NewRenderer(asciiConfig(), &bytes.Buffer{}).Render(fb)
	if got == "  " || got == "@@" {
		t.Errorf("half coverage rendered as %q", got)
	}
}

func TestRenderBlockTrueColor(t *testing.T) {
	fb := newGrid(t, 4, 1)
	cfg := asciiConfig()
	cfg.Profile = "truecolor"
	r := NewRenderer(cfg, &bytes.Buffer{})

	blank := r.Render(fb)
	if n := strings.Count(blank, "\x1b[0m"); n != 1 {
		t.Errorf("uniform row used %d sequences, want 1: %q", n, blank)
	}
	if !strings.Contains(blank, "48;2;0;0;0") {
		t.Errorf("missing black background: %q", blank)
	}

	fb.DrawPoint(raster.Pt(2, 0), raster.RGB(1, 0, 0))
	row := r.Render(fb)
	if !strings.Contains(row, "48;2;255;0;0") {
		t.Errorf("missing red background: %q", row)
	}
	if n := strings.Count(row, "\x1b[0m"); n != 3 {
		t.Errorf("got %d runs, want 3: %q", n, row)
	}
	if w := lipgloss.Width(row); w != 8 {
		t.Errorf("row width = %d, want 8", w)
	}
}

func TestRenderGridMarkers(t *testing.T) {
	fb := newGrid(t, 6, 6)
	cfg := asciiConfig()
	cfg.GridMarkers = true
	cfg.GridInterval = 5
	lines := strings.Split(NewRenderer(cfg, &bytes.Buffer{}).Render(fb), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7", len(lines))
	}
	want := map[int]string{
		0: " │",
		1: "5┤",
		5: "1┤",
	}
	for i, prefix := range want {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
	if got, want := lines[6], " └1───────5───"; got != want {
		t.Errorf("ruler = %q, want %q", got, want)
	}
}

func TestFrameBorder(t *testing.T) {
	fb := newGrid(t, 8, 3)
	cfg := asciiConfig()
	cfg.Border = true
	out := NewRenderer(cfg, &bytes.Buffer{}).Frame(fb)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}
	top := lines[0]
	if !strings.HasPrefix(top, "┌") || !strings.HasSuffix(top, "┐") || !strings.Contains(top, " main ") {
		t.Errorf("top = %q", top)
	}
	if !strings.HasPrefix(lines[4], "└") {
		t.Errorf("bottom = %q", lines[4])
	}
	w := lipgloss.Width(top)
	for i, l := range lines {
		if lipgloss.Width(l) != w {
			t.Errorf("line %d width %d, want %d", i, lipgloss.Width(l), w)
		}
	}
}

func TestTitleBarDropsLongName(t *testing.T) {
	if got := titleBar("a very long name", 6); got != "┌────┐" {
		t.Errorf("titleBar = %q", got)
	}
}

func TestRenderBraille(t *testing.T) {
	fb := newGrid(t, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			fb.DrawPoint(raster.Pt(float64(x), float64(y)), raster.White)
		}
	}
	cfg := asciiConfig()
	cfg.Mode = ModeBraille
	got := NewRenderer(cfg, &bytes.Buffer{}).Render(fb)
	if want := "⣿ "; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	// a single lit tile at grid (1,0) is the bottom-right dot when y is up
	fb.Clear()
	fb.DrawPoint(raster.Pt(1, 0), raster.White)
	if got, want := NewRenderer(cfg, &bytes.Buffer{}).Render(fb), "⢀ "; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		w, h   int
	}{
		{"block with border", func(*Config) {}, 39, 22},
		{"block bare", func(c *Config) { c.Border = false }, 40, 24},
		{"block with markers", func(c *Config) { c.Border = false; c.GridMarkers = true }, 38, 23},
		{"braille", func(c *Config) { c.Mode = ModeBraille }, 156, 88},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Profile = "ascii"
			tt.mutate(&cfg)
			w, h := NewRenderer(cfg, &bytes.Buffer{}).Fit(80, 24)
			if w != tt.w || h != tt.h {
				t.Errorf("Fit = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestPresentReadOnly(t *testing.T) {
	fb := newGrid(t, 3, 3)
	fb.DrawPoint(raster.Pt(1, 1), raster.Tile{R: 0.5, G: 0.2, B: 0.9, A: 0.7})
	before := fb.At(1, 1)

	var buf bytes.Buffer
	cfg := asciiConfig()
	cfg.Border = true
	if err := fb.DrawBuffer(NewRenderer(cfg, &buf)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), " main ") || !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("output = %q", buf.String())
	}
	if fb.At(1, 1) != before {
		t.Error("Present modified the grid")
	}
}

func TestNewFrameBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Profile = "ascii"
	r := NewRenderer(cfg, &bytes.Buffer{})

	failing := func() (int, int, error) { return 0, 0, errors.New("no tty") }
	if _, err := NewFrameBuffer(r, 0, 0, failing); !errors.Is(err, ErrDisplaySinkUnavailable) {
		t.Errorf("error = %v, want ErrDisplaySinkUnavailable", err)
	}

	called := false
	explicit := func() (int, int, error) { called = true; return 0, 0, errors.New("unused") }
	fb, err := NewFrameBuffer(r, 12, 5, explicit)
	if err != nil {
		t.Fatal(err)
	}
	if called || fb.Width() != 12 || fb.Height() != 5 {
		t.Errorf("explicit size: called=%v size=%dx%d", called, fb.Width(), fb.Height())
	}

	fb, err = NewFrameBuffer(r, 0, 0, func() (int, int, error) { return 80, 24, nil }, raster.WithName("fit"))
	if err != nil {
		t.Fatal(err)
	}
	if fb.Width() != 39 || fb.Height() != 22 || fb.Name() != "fit" {
		t.Errorf("fitted buffer %dx%d %q", fb.Width(), fb.Height(), fb.Name())
	}
}

func TestTerminalSizeNotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "size")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, _, err := TerminalSize(f.Fd()); !errors.Is(err, ErrDisplaySinkUnavailable) {
		t.Errorf("error = %v, want ErrDisplaySinkUnavailable", err)
	}
}
