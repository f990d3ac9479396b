// Package dashboard implements the live Bubble Tea usage dashboard.
//
// The loop interleaves two cadences against wall clock: a one-second
// clock tick that re-renders so the now-dependent derived values stay
// current, and a configurable data tick that re-runs the full
// locate/extract/build pipeline from scratch. Nothing is cached between
// data ticks; every refresh reflects the on-disk state. Rollout writes
// observed by the directory watcher trigger a refresh ahead of schedule.
package dashboard

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codexmeter/codexmeter/internal/config"
	"github.com/codexmeter/codexmeter/internal/models"
	"github.com/codexmeter/codexmeter/internal/notify"
	"github.com/codexmeter/codexmeter/internal/sessions"
	"github.com/codexmeter/codexmeter/internal/ui/components"
	"github.com/codexmeter/codexmeter/internal/watch"
)

// Layout holds the fixed panel geometry. The renderer takes it as a
// value so tests can exercise other widths.
type Layout struct {
	MinWidth  int
	MinHeight int
	// Interior is the usable width inside the panel border and padding.
	Interior int
	Bar      components.Bar
	// TrendHeight rows are added below the panel when the terminal
	// leaves room for them.
	TrendHeight int
}

// DefaultLayout returns the geometry the dashboard ships with.
func DefaultLayout() Layout {
	return Layout{
		MinWidth:    76,
		MinHeight:   20,
		Interior:    72,
		Bar:         components.DefaultBar(),
		TrendHeight: 6,
	}
}

// maxTrendPoints bounds the in-memory usage series; at the default
// 10-second interval this covers twenty minutes of readings.
const maxTrendPoints = 120

type refreshTickMsg time.Time
type clockTickMsg time.Time
type fileChangedMsg struct{}

type snapshotMsg struct {
	snapshot *models.Snapshot
	err      error
}

type keyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the dashboard's Bubble Tea model.
type Model struct {
	cfg    *config.Config
	layout Layout
	keys   keyMap

	watcher  *watch.Watcher
	notifier *notify.Notifier

	snapshot   *models.Snapshot
	noData     bool
	loadErr    error
	lastUpdate time.Time
	now        time.Time
	trend      []float64

	width  int
	height int
}

// New creates a dashboard model. watcher and notifier may be nil; the
// dashboard degrades to interval-only refresh without them.
func New(cfg *config.Config, watcher *watch.Watcher, notifier *notify.Notifier) *Model {
	return &Model{
		cfg:      cfg,
		layout:   DefaultLayout(),
		keys:     defaultKeyMap(),
		watcher:  watcher,
		notifier: notifier,
		now:      time.Now(),
	}
}

// Init schedules the first refresh and both tick cadences.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.refreshCmd(),
		refreshTick(m.cfg.RefreshInterval),
		clockTick(),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refreshCmd()
		}
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.refreshCmd(), refreshTick(m.cfg.RefreshInterval))

	case clockTickMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case fileChangedMsg:
		if m.watcher == nil {
			return m, m.refreshCmd()
		}
		return m, tea.Batch(m.refreshCmd(), waitForChange(m.watcher))

	case snapshotMsg:
		m.applySnapshot(msg)
		return m, nil
	}

	return m, nil
}

func (m *Model) applySnapshot(msg snapshotMsg) {
	m.now = time.Now()
	m.lastUpdate = m.now

	switch {
	case errors.Is(msg.err, sessions.ErrNoRecords):
		m.snapshot = nil
		m.noData = true
		m.loadErr = nil
	case msg.err != nil:
		// Keep the previous snapshot on transient failures; the next
		// tick rebuilds from scratch anyway.
		m.loadErr = msg.err
	default:
		m.snapshot = msg.snapshot
		m.noData = false
		m.loadErr = nil

		if msg.snapshot.Primary != nil {
			m.trend = append(m.trend, msg.snapshot.Primary.UsedPercent)
			if len(m.trend) > maxTrendPoints {
				m.trend = m.trend[len(m.trend)-maxTrendPoints:]
			}
		}
		if m.notifier != nil {
			m.notifier.Observe(msg.snapshot)
		}
		if m.watcher != nil {
			m.watcher.Retarget(msg.snapshot.SourceFile)
		}
	}
}

// refreshCmd re-runs the whole discovery pipeline off the Update loop.
func (m *Model) refreshCmd() tea.Cmd {
	base := m.cfg.SessionsPath
	return func() tea.Msg {
		res, err := sessions.FindLatest(base, time.Now())
		if err != nil {
			return snapshotMsg{err: err}
		}
		snap, err := models.BuildSnapshot(res.Path, res.Record)
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{snapshot: snap}
	}
}

func refreshTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changes()
		return fileChangedMsg{}
	}
}
