package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"sketchbook/internal/geom"
	"sketchbook/internal/sketch"
)

type sketchItem struct {
	name, about string
}

func (s sketchItem) Title() string       { return "◆ " + s.name }
func (s sketchItem) Description() string { return s.about }
func (s sketchItem) FilterValue() string { return s.name }

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// refreshItems lists the sketches followed by the overlay files in cwd.
func (m *Model) refreshItems() {
	var items []list.Item
	for _, name := range sketch.Names() {
		items = append(items, sketchItem{name: name, about: sketch.About(name)})
	}
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
	}
	var files []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		files = append(files, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].(fileItem).title < files[j].(fileItem).title })
	m.items = append(items, files...)
	m.l.SetItems(m.items)
}

// selectSketch moves the sidebar cursor to the named sketch.
func (m *Model) selectSketch(name string) {
	for i, it := range m.items {
		if s, ok := it.(sketchItem); ok && s.name == name {
			m.l.Select(i)
			return
		}
	}
}

// openSelected runs the highlighted sketch or overlays the highlighted file.
func (m *Model) openSelected() tea.Cmd {
	switch it := m.l.SelectedItem().(type) {
	case sketchItem:
		return m.switchSketch(it.name)
	case fileItem:
		return m.loadPath(it.path)
	}
	return nil
}

// switchSketch replaces the running sketch and starts its data load.
func (m *Model) switchSketch(name string) tea.Cmd {
	env := m.env
	env.Now = m.now
	s, err := sketch.New(name, env)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	m.cur = s
	m.hovering = false
	m.pasteMode = false
	m.ta.Blur()
	m.status = "sketch: " + name
	m.log.Info("sketch switched", zap.String("sketch", name))
	m.selectSketch(name)
	m.refreshAttrs()
	m.redraw()
	return m.fetch()
}

// cycleSketch switches to the next or previous registered sketch.
func (m *Model) cycleSketch(step int) tea.Cmd {
	names := sketch.Names()
	i := 0
	for j, n := range names {
		if n == m.cur.Name() {
			i = j
		}
	}
	return m.switchSketch(names[(i+step+len(names))%len(names)])
}

// mapSketch returns the map sketch, switching to it first if needed.
func (m *Model) mapSketch() (*sketch.MapSketch, tea.Cmd) {
	if ms, ok := m.cur.(*sketch.MapSketch); ok {
		return ms, nil
	}
	cmd := m.switchSketch("map")
	ms, _ := m.cur.(*sketch.MapSketch)
	return ms, cmd
}

// loadPath overlays a geometry file on the map.
func (m *Model) loadPath(p string) tea.Cmd {
	d, err := geom.LoadFile(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Warn("overlay load failed", zap.String("path", p), zap.Error(err))
		return nil
	}
	ms, cmd := m.mapSketch()
	if ms == nil {
		return cmd
	}
	ms.Map().AddLayer(filepath.Base(p), d)
	m.status = "loaded: " + filepath.Base(p) + "  counts: " + d.Counts()
	m.log.Info("overlay added", zap.String("path", p), zap.String("counts", d.Counts()))
	m.refreshAttrs()
	m.redraw()
	return cmd
}

// pasteWKT overlays the text area's WKT on the map.
func (m *Model) pasteWKT() tea.Cmd {
	w := strings.TrimSpace(m.ta.Value())
	if w == "" {
		m.status = "paste: empty"
		return nil
	}
	d, err := geom.ParseWKT(w)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return nil
	}
	m.pasteMode = false
	m.ta.Blur()
	ms, cmd := m.mapSketch()
	if ms == nil {
		return cmd
	}
	ms.Map().AddLayer("wkt", d)
	m.status = "rendered WKT  counts: " + d.Counts()
	m.refreshAttrs()
	m.redraw()
	return cmd
}
