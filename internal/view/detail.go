package view

import "fmt"

// Attendee status icons, one fixed glyph per response status.
const (
	IconAccepted  = "✓"
	IconDeclined  = "✕"
	IconTentative = "?"
	IconNone      = "○"
)

// StatusIcon selects the display glyph for an attendee status. Unknown
// statuses fall back to the no-response icon.
func StatusIcon(status AttendeeStatus) string {
	switch status {
	case StatusAccepted:
		return IconAccepted
	case StatusDeclined:
		return IconDeclined
	case StatusTentative:
		return IconTentative
	default:
		return IconNone
	}
}

// AttendeeLine is one display row in the detail attendee list.
type AttendeeLine struct {
	Label string
	Icon  string
}

// Detail is the display-ready projection of one event for the detail view.
// Each Has flag hides its section when the source field is absent.
type Detail struct {
	ID             string
	Subject        string
	Cancelled      bool
	DateLine       string
	TimeLine       string
	Location       string
	HasLocation    bool
	Organizer      string
	HasOrganizer   bool
	Attendees      []AttendeeLine
	HasAttendees   bool
	Description    string
	HasDescription bool
	TeamsURL       string
	HasTeamsLink   bool
	WebLink        string
	HasWebLink     bool
	Important      bool
	Recurring      bool
	Teams          bool
}

// Detail projects one event into its display-ready field set.
func (e *Engine) Detail(ev Event) Detail {
	start := e.localStart(ev)
	end := e.localEnd(ev)

	d := Detail{
		ID:        ev.ID,
		Subject:   ev.DisplaySubject(),
		Cancelled: ev.IsCancelled,
		DateLine:  start.Format(layoutDayTitle),
		TimeLine:  fmt.Sprintf("%s - %s", start.Format(layoutClockTime), end.Format(layoutClockTime)),
		Important: ev.Importance == "high",
		Recurring: ev.IsRecurring,
		Teams:     ev.IsOnlineMeeting,
	}

	if ev.Location != "" {
		d.Location = ev.Location
		d.HasLocation = true
	}
	if ev.Organizer != "" {
		d.Organizer = ev.Organizer
		d.HasOrganizer = true
	}
	if len(ev.Attendees) > 0 {
		for _, a := range ev.Attendees {
			label := a.Name
			if label == "" {
				label = a.Email
			}
			d.Attendees = append(d.Attendees, AttendeeLine{Label: label, Icon: StatusIcon(a.Status)})
		}
		d.HasAttendees = true
	}
	if ev.BodyPreview != "" {
		d.Description = ev.BodyPreview
		d.HasDescription = true
	}
	if ev.OnlineMeetingURL != "" {
		d.TeamsURL = ev.OnlineMeetingURL
		d.HasTeamsLink = true
	}
	if ev.WebLink != "" {
		d.WebLink = ev.WebLink
		d.HasWebLink = true
	}

	return d
}

// TeamsMeetings projects the store's upcoming Teams meetings, in store
// order, for the meetings list panel.
func (e *Engine) TeamsMeetings(store *Store) []Detail {
	var out []Detail
	for _, ev := range store.TeamsMeetings() {
		out = append(out, e.Detail(ev))
	}
	return out
}
