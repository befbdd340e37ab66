package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"trirast/internal/config"
	"trirast/internal/display"
	"trirast/internal/raster"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	cfg.Display.Profile = "ascii"
	return *cfg
}

func newModel(t *testing.T, cfg config.Config) Model {
	t.Helper()
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// sized returns a model laid out in an 80x24 window: the canvas fits a
// 39x19 buffer inside the border with two-column pixels.
func sized(t *testing.T) Model {
	t.Helper()
	m, _ := send(t, newModel(t, testConfig()), tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func assertSize(t *testing.T, m Model, w, h int) {
	t.Helper()
	fb := m.FrameBuffer()
	if fb == nil {
		t.Fatal("no framebuffer")
	}
	if fb.Width() != w || fb.Height() != h {
		t.Fatalf("framebuffer %dx%d, want %dx%d", fb.Width(), fb.Height(), w, h)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Colorer = "plaid"
	if _, err := New(cfg); err == nil {
		t.Fatal("New accepted an unknown colorer")
	}
}

func TestWindowSizeAllocatesBuffer(t *testing.T) {
	m := newModel(t, testConfig())
	if m.FrameBuffer() != nil || m.View() != "" {
		t.Fatal("buffer allocated before the window size is known")
	}
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assertSize(t, m, 39, 19)
	if m.Scene() == nil {
		t.Fatal("no scene after layout")
	}
	if v := m.View(); !strings.Contains(v, "triangle") {
		t.Errorf("view is missing the buffer name:\n%s", v)
	}
}

func TestResizeAllocatesNewBuffer(t *testing.T) {
	m := sized(t)
	old := m.FrameBuffer()
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.FrameBuffer() == old {
		t.Fatal("buffer reused across a resize")
	}
	if old.Width() != 39 || old.Height() != 19 {
		t.Errorf("old buffer changed size to %dx%d", old.Width(), old.Height())
	}
	assertSize(t, m, 49, 25)
}

func TestFixedSize(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 20, 10
	m := newModel(t, cfg)
	assertSize(t, m, 20, 10)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assertSize(t, m, 20, 10)
}

func TestTickStepsUnlessPaused(t *testing.T) {
	m := sized(t)
	m, cmd := send(t, m, tickMsg{})
	if cmd == nil {
		t.Fatal("tick did not schedule the next frame")
	}
	if m.Scene().Frame() != 1 {
		t.Fatalf("frame = %d after one tick", m.Scene().Frame())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.paused {
		t.Fatal("space did not pause")
	}
	m, cmd = send(t, m, tickMsg{})
	if cmd == nil || m.Scene().Frame() != 1 {
		t.Errorf("paused tick: frame %d, cmd %v", m.Scene().Frame(), cmd != nil)
	}
}

func TestRotationKeys(t *testing.T) {
	m := sized(t)
	start := m.Scene().Rotation()
	m, _ = send(t, m, key("+"))
	m, _ = send(t, m, key("+"))
	m, _ = send(t, m, key("-"))
	if got := m.Scene().Rotation(); got-start < rotationStep*0.99 || got-start > rotationStep*1.01 {
		t.Errorf("rotation %v, want %v", got, start+rotationStep)
	}
	if !strings.HasPrefix(m.Status(), "rotation:") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestDisplayToggles(t *testing.T) {
	tests := []struct {
		name string
		key  string
		w, h int
		want func(Model) bool
	}{
		{"braille", "m", 156, 76, func(m Model) bool { return m.renderer.Config().Mode == display.ModeBraille }},
		{"grid markers", "g", 37, 18, func(m Model) bool { return m.renderer.Config().GridMarkers }},
		{"coverage", "c", 39, 19, func(m Model) bool { return m.FrameBuffer().Coverage() == raster.CoverageFloor }},
		{"sidebar", "tab", 24, 19, func(m Model) bool { return m.showSidebar }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sized(t)
			var msg tea.KeyMsg
			if tt.key == "tab" {
				msg = tea.KeyMsg{Type: tea.KeyTab}
			} else {
				msg = key(tt.key)
			}
			m, _ = send(t, m, msg)
			if !tt.want(m) {
				t.Fatal("toggle not applied")
			}
			assertSize(t, m, tt.w, tt.h)
		})
	}
}

func TestPasteTriangle(t *testing.T) {
	m := sized(t)
	m, _ = send(t, m, key("p"))
	if !m.pasteMode {
		t.Fatal("p did not enter paste mode")
	}
	m.ta.SetValue("POLYGON((1 1, 10 1, 1 8, 1 1))")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.pasteMode || m.failed {
		t.Fatalf("paste failed: %q", m.Status())
	}
	if got := len(m.Scene().Triangles()); got != 2 {
		t.Errorf("%d triangles, want 2", got)
	}
}

func TestPasteRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collinear", "1 1, 2 2, 3 3", "degenerate"},
		{"too few", "1 1, 2 2", "need 3 vertices"},
		{"garbage", "LINESTRING(0 0, 1 1)", "unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sized(t)
			m, _ = send(t, m, key("p"))
			m.ta.SetValue(tt.in)
			m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			if !m.pasteMode || !m.failed {
				t.Fatal("bad input accepted")
			}
			if !strings.Contains(m.Status(), tt.want) {
				t.Errorf("status %q, want it to mention %q", m.Status(), tt.want)
			}
			if got := len(m.Scene().Triangles()); got != 1 {
				t.Errorf("%d triangles after rejected paste", got)
			}
		})
	}
}

func TestAddTriangleWithoutCanvas(t *testing.T) {
	m := newModel(t, testConfig())
	err := m.addTriangle([3]raster.Point{raster.Pt(0, 0), raster.Pt(1, 0), raster.Pt(0, 1)})
	if !errors.Is(err, errNoCanvas) {
		t.Errorf("err = %v", err)
	}
}

func TestColorerPicker(t *testing.T) {
	m := sized(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	for i, it := range m.l.Items() {
		if it.FilterValue() == "rainbow" {
			m.l.Select(i)
		}
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Scene().Colorer().Name; got != "rainbow" {
		t.Fatalf("colorer = %q", got)
	}
	for i, tri := range m.Scene().Triangles() {
		if tri.Colorer() == nil {
			t.Errorf("triangle %d has no colorer", i)
		}
	}
}

func TestInspectTable(t *testing.T) {
	m := sized(t)
	m, _ = send(t, m, key("a"))
	if !m.showAttrs {
		t.Fatal("a did not open the inspect table")
	}
	rows := m.tbl.Rows()
	if len(rows) != 1 {
		t.Fatalf("%d rows, want 1", len(rows))
	}
	if len(rows[0]) != len(attrColumns()) {
		t.Errorf("row has %d cells, want %d", len(rows[0]), len(attrColumns()))
	}
	if !strings.Contains(m.View(), "vertices") {
		t.Error("inspect table not shown")
	}
}

func TestExtremeLabel(t *testing.T) {
	if got := extremeLabel(raster.Extreme{Index: 1, Tie: -1}); got != "v1" {
		t.Errorf("got %q", got)
	}
	if got := extremeLabel(raster.Extreme{Index: 0, Tie: 2}); got != "v0=v2" {
		t.Errorf("got %q", got)
	}
}

func TestMoveAndReseed(t *testing.T) {
	m := sized(t)
	pivot := m.Scene().Pivot()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got, want := m.Scene().Pivot(), pivot.Add(raster.Pt(-1, 1)); got != want {
		t.Errorf("pivot %v, want %v", got, want)
	}

	m, _ = send(t, m, tickMsg{})
	m, _ = send(t, m, key("r"))
	if m.Scene().Frame() != 0 || m.Status() != "reseeded" {
		t.Errorf("frame %d status %q after reseed", m.Scene().Frame(), m.Status())
	}
}

func TestQuit(t *testing.T) {
	_, cmd := send(t, sized(t), key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
