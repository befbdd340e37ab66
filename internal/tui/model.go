package tui

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"trirast/internal/config"
	"trirast/internal/display"
	"trirast/internal/raster"
	"trirast/internal/scene"
)

type Model struct {
	width  int
	height int

	cfg      config.Config
	renderer *display.Renderer
	fb       *raster.FrameBuffer
	scene    *scene.Scene
	rng      *rand.Rand
	coverage raster.CoverageMode

	paused      bool
	helpVisible bool

	status string
	failed bool // status holds an error

	// last frame
	drawn   int
	skipped int

	// colorer picker
	showSidebar bool
	l           list.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect table
	showAttrs bool
	tbl       table.Model
}

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// New builds the model. A fixed width and height in cfg allocate the
// framebuffer immediately; otherwise it is sized on the first
// tea.WindowSizeMsg.
func New(cfg config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	m := Model{
		cfg:         cfg,
		renderer:    display.NewRenderer(cfg.Display, io.Discard),
		rng:         cfg.Rand(),
		coverage:    cfg.CoverageMode(),
		helpVisible: true,
		status:      "trirast ready",
	}
	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(colorerItems(), d, 0, 0)
	m.l.Title = "Colorers"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a triangle: POLYGON((x y, x y, x y)) or x y, x y, x y. Enter adds it; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// inspect table setup
	m.tbl = table.New(table.WithColumns(attrColumns()), table.WithFocused(true))
	m.tbl.SetHeight(12)

	if err := m.relayout(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd { return tick(m.cfg.FrameInterval()) }

func (m *Model) buildScene(c scene.NamedColorer) error {
	s, err := scene.New(m.cfg.Scene, m.fb.Width(), m.fb.Height(), m.cfg.Rotation, c, m.rng)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	m.scene = s
	return nil
}

// FrameBuffer returns the current buffer, nil before the first layout.
func (m Model) FrameBuffer() *raster.FrameBuffer { return m.fb }

// Scene returns the animated scene, nil before the first layout.
func (m Model) Scene() *scene.Scene { return m.scene }

// Status returns the status line text.
func (m Model) Status() string { return m.status }
