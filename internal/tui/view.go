package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sketchbook/internal/sketch"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, _, areaW, areaH := m.layout()
	contentWidth := max(10, m.width)

	w, h := m.cur.Size()
	header := titleStyle.Render(" sketchbook ─ " + m.cur.Name() + " ")
	header += dimStyle.Render(fmt.Sprintf(" %s (%.0f×%.0f)", sketch.About(m.cur.Name()), w, h))
	header = lipgloss.NewStyle().Width(contentWidth).MaxHeight(headerHeight).Render(header)

	var area string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		boxW := min(areaW, max(32, colW))
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(areaH-2, 20))
		area = lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, boxStyle.Width(boxW).Render(m.tbl.View()))
	case m.pasteMode:
		m.ta.SetWidth(areaW)
		m.ta.SetHeight(min(areaH, 12))
		area = lipgloss.NewStyle().Width(areaW).Height(areaH).Render(m.ta.View())
	default:
		area = lipgloss.NewStyle().Width(areaW).Height(areaH).MaxHeight(areaH).Render(strings.Join(m.screen, "\n"))
	}

	// the inspect box sits under the list so the canvas rows stay aligned
	// with the mouse mapping
	inspect := m.inspectLines()
	body := area
	statusText := m.status
	if m.showSidebar {
		side := m.l
		var box string
		if len(inspect) > 0 {
			box = popupStyle.Width(sidebarWidth - 2).Render(strings.Join(inspect, "\n"))
		}
		side.SetSize(sidebarWidth-2, max(2, areaH-2-lipgloss.Height(box)))
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(areaH).MaxHeight(areaH).
			Render(lipgloss.JoinVertical(lipgloss.Left, side.View(), box))
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", area)
	} else if len(inspect) > 0 {
		statusText = strings.Join(inspect, " · ")
	}

	status := dimStyle.Render(" " + statusText + " ")
	right := dimStyle.Render("  " + m.coords() + "  ")
	if ms, ok := m.cur.(*sketch.MapSketch); ok && ms.Pointing() {
		right = pointerStyle.Render(" ☛ ") + right
	}
	spacer := strings.Repeat(" ", max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(right)))
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(status+spacer+right),
		lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(m.renderHelp()),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).MaxHeight(m.height).Render(ui)
}

// inspectLines is what the sketch reports about the pointer or the selected
// element.
func (m Model) inspectLines() []string {
	if in, ok := m.cur.(sketch.Inspector); ok {
		return in.Inspect()
	}
	return nil
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"Tab sidebar",
		"Enter open",
		"[ ] sketch",
		"p paste WKT",
		"a attrs",
		"h help",
		"q quit",
	}
	if kh, ok := m.cur.(sketch.KeyHandler); ok {
		keys = append([]string{kh.Keys()}, keys...)
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
