// Package tui is the terminal viewer: a sidebar of sketches and overlay
// files, the running sketch drawn in braille, and a status footer.
package tui

import (
	"context"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"sketchbook/internal/config"
	"sketchbook/internal/render"
	"sketchbook/internal/sketch"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	ctx context.Context
	cfg config.Config
	log *zap.Logger
	env sketch.Env

	// sidebar: sketches, then overlay files from cwd
	cwd   string
	l     list.Model
	items []list.Item

	cur    sketch.Sketch
	canvas *render.Canvas
	screen []string
	now    time.Time

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// pointer over the drawing area
	hovering bool
	hoverX   float64
	hoverY   float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New builds the viewer running the named sketch.
func New(ctx context.Context, cfg config.Config, log *zap.Logger, name string) (Model, error) {
	m := Model{
		showSidebar: true,
		helpVisible: true,
		status:      "sketchbook ready",
		ctx:         ctx,
		cfg:         cfg,
		log:         log,
		env:         sketch.NewEnv(cfg, log),
	}
	m.now = m.env.Now
	s, err := sketch.New(name, m.env)
	if err != nil {
		return Model{}, err
	}
	m.cur = s
	m.cwd, _ = os.Getwd()
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Sketches"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON and MULTI*). Press Enter to overlay it on the map; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshItems()
	m.selectSketch(name)
	return m, nil
}

// Init starts the frame clock and the first data load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.fetch())
}

// Sketch returns the running sketch.
func (m Model) Sketch() sketch.Sketch { return m.cur }

func (m Model) Status() string { return m.status }
