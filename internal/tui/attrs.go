package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"sketchbook/internal/sketch"
)

const maxColWidth = 24

// refreshAttrs rebuilds the table from the running sketch's data when the
// table is shown.
func (m *Model) refreshAttrs() {
	if !m.showAttrs {
		return
	}
	tb, ok := m.cur.(sketch.Tabler)
	if !ok {
		m.showAttrs = false
		m.status = "no attributes for " + m.cur.Name()
		return
	}
	cols, rows := tb.Table()
	// an empty table panics the bubbles renderer
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColWidth)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		cells := make([]string, len(tcols))
		cells[0] = fmt.Sprintf("%d", i+1)
		copy(cells[1:], r)
		trows = append(trows, table.Row(cells))
	}
	// clear rows first so columns and rows never disagree mid-update
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}
