package view

import "time"

// Engine renders calendar views. It owns the two pieces of environment the
// renderers need, the display location and the clock, so callers never reach
// for ambient globals and tests can pin both.
type Engine struct {
	loc *time.Location
	now func() time.Time
}

// NewEngine creates an engine rendering in the given location. A nil location
// defaults to the local time zone; a nil clock defaults to time.Now.
func NewEngine(loc *time.Location, now func() time.Time) *Engine {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{loc: loc, now: now}
}

// Location returns the engine's display location.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Now returns the current instant in the engine's display location.
func (e *Engine) Now() time.Time {
	return e.now().In(e.loc)
}

// Today returns the date identity of the current instant.
func (e *Engine) Today() DateKey {
	return dateKeyOf(e.Now())
}

// AnchorKey returns the date identity of the state's anchor.
func (e *Engine) AnchorKey(st State) DateKey {
	return dateKeyOf(st.Anchor.In(e.loc))
}

// localStart returns the event's start instant expressed in the engine's
// display location.
func (e *Engine) localStart(ev Event) time.Time {
	return ev.StartInstant().In(e.loc)
}

// localEnd returns the event's end instant expressed in the engine's display
// location.
func (e *Engine) localEnd(ev Event) time.Time {
	return ev.EndInstant().In(e.loc)
}
