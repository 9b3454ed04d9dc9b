package view

import (
	"fmt"
	"time"
)

// ViewMode selects which of the three views is active.
type ViewMode string

const (
	ModeMonth ViewMode = "month"
	ModeWeek  ViewMode = "week"
	ModeDay   ViewMode = "day"
)

// ValidMode reports whether m names one of the three views.
func ValidMode(m ViewMode) bool {
	return m == ModeMonth || m == ModeWeek || m == ModeDay
}

// State is the navigation state for one page session: the active view, the
// anchor date that determines the visible window, and the optional selected
// day. Selected is only ever set in month view and is cleared by every other
// transition.
type State struct {
	Mode     ViewMode
	Anchor   time.Time
	Selected *DateKey
}

// NewState returns the initial navigation state: month view anchored at the
// current instant.
func (e *Engine) NewState() State {
	return State{Mode: ModeMonth, Anchor: e.Now()}
}

// SwitchView activates the given view mode and clears the selected day.
func (e *Engine) SwitchView(st *State, mode ViewMode) {
	if !ValidMode(mode) {
		return
	}
	st.Mode = mode
	st.Selected = nil
}

// Navigate moves the anchor by delta steps, where one step is a month, a
// week or a day depending on the active view. Clears the selected day.
func (e *Engine) Navigate(st *State, delta int) {
	anchor := st.Anchor.In(e.loc)
	switch st.Mode {
	case ModeWeek:
		st.Anchor = anchor.AddDate(0, 0, delta*7)
	case ModeDay:
		st.Anchor = anchor.AddDate(0, 0, delta)
	default:
		st.Anchor = anchor.AddDate(0, delta, 0)
	}
	st.Selected = nil
}

// GoToToday resets the anchor to the current instant and clears the
// selected day.
func (e *Engine) GoToToday(st *State) {
	st.Anchor = e.Now()
	st.Selected = nil
}

// SelectDate records a day chosen in the month grid. Selecting the day the
// view is already anchored on promotes to day view (double-select rule);
// the returned bool reports that promotion. Otherwise both the selection and
// the anchor move to the chosen day.
func (e *Engine) SelectDate(st *State, year int, month time.Month, day int) bool {
	chosen := DateKey{Year: year, Month: month, Day: day}

	if st.Mode == ModeMonth && dateKeyOf(st.Anchor.In(e.loc)) == chosen {
		st.Anchor = chosen.Date(e.loc)
		e.SwitchView(st, ModeDay)
		return true
	}

	st.Anchor = chosen.Date(e.loc)
	st.Selected = &chosen
	return false
}

// Command is a navigation intent decoded from a transport (HTTP query
// parameters, key bindings). Fields beyond Action are read per action.
type Command struct {
	Action string
	Mode   ViewMode
	Delta  int
	Year   int
	Month  time.Month
	Day    int
}

// Command action names.
const (
	ActionSwitchView = "switch-view"
	ActionNavigate   = "navigate"
	ActionToday      = "today"
	ActionSelectDate = "select-date"
)

// transitions is the dispatch table routing command names to state machine
// transitions.
var transitions = map[string]func(*Engine, *State, Command){
	ActionSwitchView: func(e *Engine, st *State, c Command) { e.SwitchView(st, c.Mode) },
	ActionNavigate:   func(e *Engine, st *State, c Command) { e.Navigate(st, c.Delta) },
	ActionToday:      func(e *Engine, st *State, _ Command) { e.GoToToday(st) },
	ActionSelectDate: func(e *Engine, st *State, c Command) { e.SelectDate(st, c.Year, c.Month, c.Day) },
}

// Dispatch applies a command to the state. Unknown actions are rejected.
func (e *Engine) Dispatch(st *State, cmd Command) error {
	fn, ok := transitions[cmd.Action]
	if !ok {
		return fmt.Errorf("unknown action %q", cmd.Action)
	}
	fn(e, st, cmd)
	return nil
}
