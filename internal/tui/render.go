package tui

import (
	"fmt"

	"trirast/internal/display"
	"trirast/internal/raster"
	"trirast/internal/scene"
)

// mapArea is the size in cells left for the framed canvas.
func (m *Model) mapArea() (cols, rows int, err error) {
	if m.width == 0 || m.height == 0 {
		return 0, 0, fmt.Errorf("%w: window size not known yet", display.ErrDisplaySinkUnavailable)
	}
	cols = m.width
	if m.showSidebar {
		cols -= sidebarWidth + 1
	}
	rows = m.height - headerHeight - footerHeight
	return max(1, cols), max(1, rows), nil
}

func (m *Model) options() []raster.Option {
	return []raster.Option{
		raster.WithName(m.cfg.Name),
		raster.WithSupersample(m.cfg.Supersample),
		raster.WithCoverage(m.coverage),
	}
}

// relayout allocates a new buffer for the current window and settings.
// Buffers never change size; the scene is rescaled onto the new one.
func (m *Model) relayout() error {
	fixed := m.cfg.Width > 0 && m.cfg.Height > 0
	if !fixed && (m.width == 0 || m.height == 0) {
		return nil
	}
	fb, err := display.NewFrameBuffer(m.renderer, m.cfg.Width, m.cfg.Height, m.mapArea, m.options()...)
	if err != nil {
		return err
	}
	m.fb = fb
	if m.scene == nil {
		c, _ := scene.LookupColorer(m.cfg.Colorer)
		if err := m.buildScene(c); err != nil {
			return err
		}
	} else {
		m.scene.Resize(fb.Width(), fb.Height())
	}
	m.redraw()
	return nil
}

// redraw renders the scene into the buffer. View only reads the result.
func (m *Model) redraw() {
	if m.fb == nil || m.scene == nil {
		return
	}
	m.drawn, m.skipped = m.scene.Render(m.fb)
	if m.showAttrs {
		m.refreshAttrs()
	}
}

func (m Model) canvas() string {
	if m.fb == nil {
		return dimStyle.Render("waiting for window size")
	}
	return m.renderer.Frame(m.fb)
}

func (m *Model) setStatus(format string, a ...any) {
	m.status = fmt.Sprintf(format, a...)
	m.failed = false
}

func (m *Model) setError(what string, err error) {
	m.status = what + ": " + err.Error()
	m.failed = true
}
