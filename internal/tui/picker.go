package tui

import (
	list "github.com/charmbracelet/bubbles/list"

	"trirast/internal/scene"
)

func colorerItems() []list.Item {
	cs := scene.Colorers()
	items := make([]list.Item, len(cs))
	for i, c := range cs {
		items[i] = c
	}
	return items
}

func (m *Model) sizeSidebar() {
	m.l.SetSize(sidebarWidth-2, max(1, m.height-headerHeight-footerHeight-2))
	m.selectColorer(m.cfg.Colorer)
}

func (m *Model) selectColorer(name string) {
	for i, it := range m.l.Items() {
		if c, ok := it.(scene.NamedColorer); ok && c.Name == name {
			m.l.Select(i)
			return
		}
	}
}

// applyColorer switches every triangle to the highlighted colorer.
func (m *Model) applyColorer() {
	c, ok := m.l.SelectedItem().(scene.NamedColorer)
	if !ok || m.scene == nil {
		return
	}
	m.cfg.Colorer = c.Name
	m.scene.SetColorer(c)
	m.redraw()
	m.setStatus("colorer: %s", c.Name)
}
