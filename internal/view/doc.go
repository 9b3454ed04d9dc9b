// Package view implements the calendar view engine.
//
// The engine takes a flat list of synced events plus a navigation state and
// deterministically produces render models for three interchangeable views:
// a month grid, a week grid and a day agenda. Render models are plain data
// structures describing cells, slots and the events that occupy them; they
// carry no presentation concerns, so both the HTML templates and the terminal
// UI consume the same output.
//
// # Time handling
//
// Upstream date-time strings are naive local values paired with a time zone
// marker. The engine always reinterprets the stored value as UTC by appending
// a UTC marker before parsing, then renders the resulting instant in the
// engine's configured location. When the upstream value was not actually UTC
// this shifts displayed times by the viewer's UTC offset. That behaviour is
// inherited deliberately: correcting it would move events between calendar
// day and hour buckets.
//
// # Navigation
//
// A small state machine tracks the active view mode, the anchor date that
// determines the visible window, and an optional selected day (month view
// only). Transitions are exposed both as methods and through a command
// dispatch table keyed by action name, so HTTP query parameters and terminal
// key bindings route through the same code.
package view
