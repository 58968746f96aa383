package tui

import (
	"fmt"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"sketchbook/internal/camera"
	"sketchbook/internal/render"
	"sketchbook/internal/sketch"
)

type tickMsg time.Time

// loadedMsg carries a finished fetch back to the loop. Results for a sketch
// that is no longer running are dropped.
type loadedMsg struct {
	s     sketch.Sketch
	apply func(time.Time)
	err   error
}

func (m Model) tick() tea.Cmd {
	fps := max(m.cfg.FPS, 1)
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// fetch loads the running sketch's data off the loop.
func (m Model) fetch() tea.Cmd {
	l, ok := m.cur.(sketch.Loader)
	if !ok {
		return nil
	}
	s, ctx := m.cur, m.ctx
	return func() tea.Msg {
		apply, err := l.Fetch(ctx)
		return loadedMsg{s: s, apply: apply, err: err}
	}
}

// layout returns the drawing area's origin and size in cells. It must match
// View.
func (m Model) layout() (x, y, w, h int) {
	if m.showSidebar {
		x = sidebarWidth + 1
	}
	w = max(10, m.width-x)
	h = max(4, m.height-headerHeight-footerHeight)
	return x, headerHeight, w, h
}

// redraw renders the current frame into the canvas, resizing it to the
// drawing area first.
func (m *Model) redraw() {
	_, _, w, h := m.layout()
	if m.canvas == nil {
		m.canvas = render.NewCanvas(w, h)
	} else if cw, ch := m.canvas.Size(); cw != w || ch != h {
		m.canvas = render.NewCanvas(w, h)
	}
	m.canvas.Draw(m.cur.Frame(m.now))
	m.screen = m.canvas.Lines()
}

// pointerXY converts a drawing-area cell to the coordinates the sketch
// expects.
func (m Model) pointerXY(cx, cy int) (float64, float64) {
	if _, ok := m.cur.(sketch.ScreenPointer); ok {
		return float64(cx) * m.cfg.Camera.PixelsPerCellX, float64(cy) * m.cfg.Camera.PixelsPerCellY
	}
	return m.canvas.ToSurface(cx, cy)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		m.cur.Tick(m.now)
		m.redraw()
		return m, m.tick()
	case loadedMsg:
		if msg.s != m.cur {
			return m, nil
		}
		if msg.apply != nil {
			msg.apply(m.now)
		}
		if msg.err != nil {
			m.status = "load error: " + msg.err.Error() + " (using demo data)"
		} else {
			m.status = m.cur.Name() + " data loaded"
		}
		m.refreshAttrs()
		m.redraw()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, _, _, h := m.layout()
		m.l.SetSize(sidebarWidth-2, h-2)
		m.redraw()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// a filtering list owns the keyboard
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			m.status = "view mode"
			return m, nil
		case "enter":
			cmd := m.pasteWKT()
			return m, cmd
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshItems()
		}
		m.redraw()
		return m, nil
	case "enter":
		var cmd tea.Cmd
		if m.showSidebar {
			cmd = m.openSelected()
		}
		return m, cmd
	case "]":
		cmd := m.cycleSketch(1)
		return m, cmd
	case "[":
		cmd := m.cycleSketch(-1)
		return m, cmd
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
		return m, nil
	case "a":
		m.showAttrs = !m.showAttrs
		m.refreshAttrs()
		return m, nil
	case "h":
		m.helpVisible = !m.helpVisible
		return m, nil
	case "esc":
		if m.showAttrs {
			m.showAttrs = false
			return m, nil
		}
	}
	if m.showAttrs {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	if kh, ok := m.cur.(sketch.KeyHandler); ok {
		if status, handled := kh.Key(msg.String(), m.now); handled {
			if status != "" {
				m.status = status
				m.log.Debug("sketch key", zap.String("sketch", m.cur.Name()), zap.String("key", msg.String()), zap.String("status", status))
			}
			m.refreshAttrs()
			m.redraw()
			return m, nil
		}
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateMouse forwards mouse input over the drawing area to the sketch.
func (m *Model) updateMouse(msg tea.MouseMsg) {
	if m.canvas == nil || m.showAttrs || m.pasteMode {
		return
	}
	ox, oy, w, h := m.layout()
	cx, cy := msg.X-ox, msg.Y-oy
	inside := cx >= 0 && cy >= 0 && cx < w && cy < h
	if !inside && msg.Action != tea.MouseActionRelease {
		m.hovering = false
		return
	}
	p, ok := m.cur.(sketch.Pointer)
	if !ok {
		return
	}
	x, y := m.pointerXY(cx, cy)
	delta := m.cfg.Camera.WheelDelta
	modifier := msg.Ctrl || msg.Alt
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.Wheel(0, -delta, modifier, m.now)
		case tea.MouseButtonWheelDown:
			p.Wheel(0, delta, modifier, m.now)
		case tea.MouseButtonWheelLeft:
			p.Wheel(-delta, 0, modifier, m.now)
		case tea.MouseButtonWheelRight:
			p.Wheel(delta, 0, modifier, m.now)
		case tea.MouseButtonLeft:
			p.PointerDown(camera.ButtonPrimary, x, y, m.now)
		case tea.MouseButtonRight:
			p.PointerDown(camera.ButtonSecondary, x, y, m.now)
		case tea.MouseButtonMiddle:
			p.PointerDown(camera.ButtonMiddle, x, y, m.now)
		}
	case tea.MouseActionMotion:
		p.PointerMove(x, y, m.now)
	case tea.MouseActionRelease:
		p.PointerUp(m.now)
	}
	m.hovering = inside
	m.hoverX, m.hoverY = x, y
	m.redraw()
}

// coords describes the pointer position for the footer.
func (m Model) coords() string {
	if !m.hovering {
		return ""
	}
	if ms, ok := m.cur.(*sketch.MapSketch); ok {
		lon, lat := ms.Map().View.Unproject(m.hoverX, m.hoverY)
		return fmt.Sprintf("lon=%.5f lat=%.5f", lon, lat)
	}
	return fmt.Sprintf("x=%.0f y=%.0f", m.hoverX, m.hoverY)
}
