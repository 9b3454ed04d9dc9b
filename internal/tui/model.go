// Package tui renders the synced calendar in the terminal. It consumes the
// same render models as the web page, so the two surfaces never disagree on
// layout.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/helmsley-labs/graphcal/internal/view"
)

// ReloadFunc re-reads the synced snapshot. It returns the events and the
// last sync instant; a zero time means never synced.
type ReloadFunc func() ([]view.Event, time.Time, error)

type Model struct {
	engine *view.Engine
	store  *view.Store
	nav    view.State
	reload ReloadFunc

	lastSync time.Time

	width       int
	height      int
	helpVisible bool
	message     string

	styles Styles
}

// NewModel builds the calendar model over an already loaded store.
func NewModel(engine *view.Engine, store *view.Store, lastSync time.Time, reload ReloadFunc) *Model {
	return &Model{
		engine:   engine,
		store:    store,
		nav:      engine.NewState(),
		reload:   reload,
		lastSync: lastSync,
		styles:   DefaultStyles(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpVisible {
		m.helpVisible = false
		return m, nil
	}
	m.message = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.helpVisible = true

	case "m":
		m.dispatch(view.Command{Action: view.ActionSwitchView, Mode: view.ModeMonth})
	case "w":
		m.dispatch(view.Command{Action: view.ActionSwitchView, Mode: view.ModeWeek})
	case "d":
		m.dispatch(view.Command{Action: view.ActionSwitchView, Mode: view.ModeDay})

	case "tab":
		m.cycleView()

	case "t":
		m.dispatch(view.Command{Action: view.ActionToday})

	case "h", "pgup":
		m.dispatch(view.Command{Action: view.ActionNavigate, Delta: -1})
	case "l", "pgdown":
		m.dispatch(view.Command{Action: view.ActionNavigate, Delta: 1})

	case "left":
		m.arrow(-1)
	case "right":
		m.arrow(1)
	case "up":
		m.arrow(-7)
	case "down":
		m.arrow(7)

	case "enter":
		// Re-selecting the anchored day drops into the day agenda.
		if m.nav.Mode == view.ModeMonth {
			m.selectOffset(0)
		}

	case "r":
		m.refresh()
	}

	return m, nil
}

// cycleView steps month, week, day, month.
func (m *Model) cycleView() {
	next := view.ModeMonth
	switch m.nav.Mode {
	case view.ModeMonth:
		next = view.ModeWeek
	case view.ModeWeek:
		next = view.ModeDay
	}
	m.dispatch(view.Command{Action: view.ActionSwitchView, Mode: next})
}

// arrow moves the day selection in month view and navigates elsewhere.
func (m *Model) arrow(days int) {
	if m.nav.Mode != view.ModeMonth {
		delta := 1
		if days < 0 {
			delta = -1
		}
		m.dispatch(view.Command{Action: view.ActionNavigate, Delta: delta})
		return
	}
	m.selectOffset(days)
}

// selectOffset selects the day that lies offset days from the current
// selection, falling back to the anchor when nothing is selected yet.
func (m *Model) selectOffset(offset int) {
	base := m.engine.AnchorKey(m.nav)
	if m.nav.Selected != nil {
		base = *m.nav.Selected
	}
	target := base.Date(m.engine.Location()).AddDate(0, 0, offset)
	m.dispatch(view.Command{
		Action: view.ActionSelectDate,
		Year:   target.Year(),
		Month:  target.Month(),
		Day:    target.Day(),
	})
}

func (m *Model) dispatch(cmd view.Command) {
	// Unknown actions cannot come out of the key map.
	_ = m.engine.Dispatch(&m.nav, cmd)
}

// refresh re-reads the snapshot from the durable cache.
func (m *Model) refresh() {
	if m.reload == nil {
		return
	}
	events, syncedAt, err := m.reload()
	if err != nil {
		m.message = "Refresh failed: " + err.Error()
		return
	}
	m.store.Replace(events)
	m.lastSync = syncedAt
	m.message = "Refreshed"
}

func (m *Model) View() string {
	if m.helpVisible {
		return m.viewHelp()
	}

	switch m.nav.Mode {
	case view.ModeWeek:
		return m.viewWeek()
	case view.ModeDay:
		return m.viewDay()
	default:
		return m.viewMonth()
	}
}
