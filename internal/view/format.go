package view

import "fmt"

// Fixed en-US display formats, matching the original application's locale
// choices. Not configurable.
const (
	layoutMonthTitle = "January 2006"
	layoutDayTitle   = "Monday, January 2, 2006"
	layoutShortDate  = "Jan 2"
	layoutEventTime  = "3:04 PM"
	layoutClockTime  = "03:04 PM"
)

// FormatHour renders an hour-of-day as a 12-hour label ("7 AM", "12 PM").
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour == 12:
		return "12 PM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// EventRef is a single event entry placed in a grid cell or hour slot.
type EventRef struct {
	ID        string
	Subject   string
	TimeLabel string
	Teams     bool
	Cancelled bool
}

// ref projects an event into its cell entry form.
func (e *Engine) ref(ev Event) EventRef {
	return EventRef{
		ID:        ev.ID,
		Subject:   ev.DisplaySubject(),
		TimeLabel: e.localStart(ev).Format(layoutEventTime),
		Teams:     ev.IsOnlineMeeting,
		Cancelled: ev.IsCancelled,
	}
}

// refs projects a bucket of events, preserving order.
func (e *Engine) refs(events []Event) []EventRef {
	if len(events) == 0 {
		return nil
	}
	out := make([]EventRef, 0, len(events))
	for _, ev := range events {
		out = append(out, e.ref(ev))
	}
	return out
}
