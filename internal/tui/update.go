package tui

import (
	"errors"
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"trirast/internal/display"
	"trirast/internal/raster"
	"trirast/internal/scene"
)

// rotationStep is the +/- change in radians per frame.
const rotationStep = 0.01

var errNoCanvas = errors.New("no canvas yet")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sizeSidebar()
		if err := m.relayout(); err != nil {
			m.setError("layout", err)
		}
		return m, nil
	case tickMsg:
		if !m.paused && m.scene != nil {
			m.scene.Step()
			m.redraw()
		}
		return m, tick(m.cfg.FrameInterval())
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			m.showSidebar = false
			m.showAttrs = false
		case " ":
			m.paused = !m.paused
			if m.paused {
				m.setStatus("paused")
			} else {
				m.setStatus("running")
			}
		case "+", "=":
			m.addRotation(rotationStep)
		case "-", "_":
			m.addRotation(-rotationStep)
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.sizeSidebar()
			}
			if err := m.relayout(); err != nil {
				m.setError("layout", err)
			}
		case "enter":
			if m.showSidebar {
				m.applyColorer()
			}
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.setStatus("paste mode")
			return m, m.ta.Focus()
		case "r":
			if m.scene == nil {
				return m, nil
			}
			if err := m.scene.Reset(); err != nil {
				m.setError("reseed", err)
				return m, nil
			}
			m.redraw()
			m.setStatus("reseeded")
		case "m":
			cfg := m.renderer.Config()
			if cfg.Mode == display.ModeBraille {
				cfg.Mode = display.ModeBlock
			} else {
				cfg.Mode = display.ModeBraille
			}
			if err := m.setDisplay(cfg); err != nil {
				m.setError("layout", err)
				return m, nil
			}
			m.setStatus("mode: %s", cfg.Mode)
		case "g":
			cfg := m.renderer.Config()
			cfg.GridMarkers = !cfg.GridMarkers
			if err := m.setDisplay(cfg); err != nil {
				m.setError("layout", err)
				return m, nil
			}
			m.setStatus("grid markers: %v", cfg.GridMarkers)
		case "c":
			if m.coverage == raster.CoverageFloor {
				m.coverage = raster.CoverageBarycentric
			} else {
				m.coverage = raster.CoverageFloor
			}
			if err := m.relayout(); err != nil {
				m.setError("layout", err)
				return m, nil
			}
			m.setStatus("coverage: %s", m.coverage)
		case "h":
			m.helpVisible = !m.helpVisible
		case "up", "down", "left", "right":
			if !m.showSidebar && !m.showAttrs {
				m.move(msg.String())
			}
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.setStatus("view mode")
		return m, nil
	case "enter":
		pts, err := scene.ParseTriangle(m.ta.Value())
		if err != nil {
			m.setError("paste", err)
			return m, nil
		}
		if err := m.addTriangle(pts); err != nil {
			m.setError("paste", err)
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		m.setStatus("added triangle %d", len(m.scene.Triangles()))
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// addTriangle adds a pasted triangle. Collinear input is rejected here
// instead of being skipped on every frame.
func (m *Model) addTriangle(pts [3]raster.Point) error {
	if m.scene == nil {
		return errNoCanvas
	}
	probe, err := raster.NewTriangle(pts[0], pts[1], pts[2])
	if err != nil {
		return err
	}
	if probe.Degenerate() {
		return fmt.Errorf("%w: %v", raster.ErrDegenerateTriangle, pts)
	}
	if _, err := m.scene.Add(pts[0], pts[1], pts[2]); err != nil {
		return err
	}
	m.redraw()
	return nil
}

func (m *Model) addRotation(d float64) {
	if m.scene == nil {
		return
	}
	m.scene.SetRotation(m.scene.Rotation() + d)
	m.setStatus("rotation: %.3f rad/frame", m.scene.Rotation())
}

func (m *Model) setDisplay(cfg display.Config) error {
	m.renderer.SetConfig(cfg)
	m.cfg.Display = m.renderer.Config()
	return m.relayout()
}

// move shifts the scene one tile. Up is +y when rows are drawn bottom-up.
func (m *Model) move(key string) {
	if m.scene == nil {
		return
	}
	up := -1.0
	if m.renderer.Config().FlipY {
		up = 1
	}
	var d raster.Point
	switch key {
	case "up":
		d = raster.Pt(0, up)
	case "down":
		d = raster.Pt(0, -up)
	case "left":
		d = raster.Pt(-1, 0)
	case "right":
		d = raster.Pt(1, 0)
	}
	m.scene.Translate(d)
	m.redraw()
}
