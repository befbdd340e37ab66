package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"trirast/internal/raster"
)

func attrColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "vertices", Width: 34},
		{Title: "min x", Width: 6},
		{Title: "max x", Width: 6},
		{Title: "min y", Width: 6},
		{Title: "max y", Width: 6},
		{Title: "size", Width: 11},
		{Title: "pivot weights", Width: 17},
	}
}

// refreshAttrs rebuilds the inspect table from the scene triangles.
func (m *Model) refreshAttrs() {
	if m.scene == nil {
		m.showAttrs = false
		m.setStatus("nothing to inspect")
		return
	}
	pivot := m.scene.Pivot()
	tris := m.scene.Triangles()
	rows := make([]table.Row, 0, len(tris))
	for i, t := range tris {
		rows = append(rows, triangleRow(i, t, pivot))
	}
	// clear rows first so the column count never mismatches
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(attrColumns())
	m.tbl.SetRows(rows)
}

func triangleRow(i int, t *raster.Triangle, pivot raster.Point) table.Row {
	p := t.Points()
	verts := fmt.Sprintf("(%.1f,%.1f) (%.1f,%.1f) (%.1f,%.1f)", p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
	weights := "degenerate"
	if w, err := t.Weights(pivot); err == nil {
		weights = fmt.Sprintf("%.2f %.2f %.2f", w[0], w[1], w[2])
	}
	return table.Row{
		strconv.Itoa(i + 1),
		verts,
		extremeLabel(t.MinX()),
		extremeLabel(t.MaxX()),
		extremeLabel(t.MinY()),
		extremeLabel(t.MaxY()),
		fmt.Sprintf("%.1fx%.1f", t.Width(), t.Height()),
		weights,
	}
}

// extremeLabel names the vertex holding an extreme, "v0=v2" on a tie.
func extremeLabel(e raster.Extreme) string {
	if e.Tied() {
		return fmt.Sprintf("v%d=v%d", e.Index, e.Tie)
	}
	return fmt.Sprintf("v%d", e.Index)
}
