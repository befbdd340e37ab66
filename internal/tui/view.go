package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	// Layout sizes
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)

	// Header
	header := titleStyle.Render(" trirast ─ " + m.cfg.Name + " ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	mapWidth := contentWidth
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		mapWidth = max(10, contentWidth-sidebarWidth-1)
	}

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		maxW := min(mapWidth, max(32, colW+4))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(contentHeight-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, contentHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(mapWidth)
		m.ta.SetHeight(min(contentHeight, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(contentHeight).Render(m.ta.View())
	default:
		mapView = lipgloss.Place(mapWidth, contentHeight, lipgloss.Center, lipgloss.Center, m.canvas())
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status with frame info on the right, help below
	style := dimStyle
	if m.failed {
		style = errStyle
	}
	status := style.Render(" " + m.status + " ")
	info := dimStyle.Render(m.frameInfo() + " ")
	spacerW := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(info))
	statusLine := status + strings.Repeat(" ", spacerW) + info
	footer := lipgloss.JoinVertical(lipgloss.Left, statusLine, m.renderHelp())

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) frameInfo() string {
	if m.fb == nil || m.scene == nil {
		return ""
	}
	state := "running"
	if m.paused {
		state = "paused"
	}
	return fmt.Sprintf("%dx%d  %s  %s  frame %d  drawn %d  skipped %d  %s",
		m.fb.Width(), m.fb.Height(), m.coverage, m.scene.Colorer().Name,
		m.scene.Frame(), m.drawn, m.skipped, state)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"space pause",
		"+/- speed",
		"↑↓←→ move",
		"Tab colorers",
		"Enter apply",
		"p paste",
		"a inspect",
		"r reseed",
		"m mode",
		"g grid",
		"c coverage",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
