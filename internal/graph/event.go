package graph

import (
	"strings"
	"time"

	"github.com/helmsley-labs/graphcal/internal/view"
)

// Event represents a calendar event as returned by the Graph API.
type Event struct {
	ID              string         `json:"id"`
	Subject         string         `json:"subject"`
	BodyPreview     string         `json:"bodyPreview,omitempty"`
	Body            *EventBody     `json:"body,omitempty"`
	Start           *DateTimeZone  `json:"start,omitempty"`
	End             *DateTimeZone  `json:"end,omitempty"`
	Location        *Location      `json:"location,omitempty"`
	Organiser       *EmailAddress  `json:"organizer,omitempty"` //nolint:misspell // Microsoft API field name
	Attendees       []Attendee     `json:"attendees,omitempty"`
	IsOnlineMeeting bool           `json:"isOnlineMeeting"`
	OnlineMeeting   *OnlineMeeting `json:"onlineMeeting,omitempty"`
	WebLink         string         `json:"webLink"`
	IsCancelled     bool           `json:"isCancelled"`
	IsAllDay        bool           `json:"isAllDay"`
	Importance      string         `json:"importance"`
	ShowAs          string         `json:"showAs"`
	Categories      []string       `json:"categories,omitempty"`
	Recurrence      *Recurrence    `json:"recurrence,omitempty"`
}

// EventBody contains the event body content.
type EventBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// DateTimeZone contains a date-time with time zone.
type DateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Location contains location information.
type Location struct {
	DisplayName string `json:"displayName"`
}

// EmailAddress contains email address information.
type EmailAddress struct {
	EmailAddress struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"emailAddress"`
}

// Attendee represents an event attendee.
type Attendee struct {
	Type   string `json:"type"`
	Status *struct {
		Response string `json:"response"`
		Time     string `json:"time"`
	} `json:"status,omitempty"`
	EmailAddress struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"emailAddress"`
}

// OnlineMeeting contains the Teams join link of an online event.
type OnlineMeeting struct {
	JoinURL string `json:"joinUrl"`
}

// Recurrence contains recurrence pattern information.
type Recurrence struct {
	Pattern *struct {
		Type       string   `json:"type"`
		Interval   int      `json:"interval"`
		DaysOfWeek []string `json:"daysOfWeek,omitempty"`
	} `json:"pattern,omitempty"`
	Range *struct {
		Type      string `json:"type"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate,omitempty"`
	} `json:"range,omitempty"`
}

// Calendar represents one of the user's calendars.
type Calendar struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Color             string `json:"color"`
	IsDefaultCalendar bool   `json:"isDefaultCalendar"`
	CanEdit           bool   `json:"canEdit"`
	Owner             *struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"owner,omitempty"`
}

// previewLimit is the number of source characters of body content kept in
// the normalised preview, counted before tag stripping.
const previewLimit = 200

// Normalise converts a Graph event to the application's event model.
// Subjects default to a placeholder, attendee statuses collapse to a
// four-way enum and the body becomes a short stripped-text preview.
func Normalise(ev *Event, syncedAt time.Time) view.Event {
	out := view.Event{
		ID:              ev.ID,
		Subject:         ev.Subject,
		IsOnlineMeeting: ev.IsOnlineMeeting,
		IsCancelled:     ev.IsCancelled,
		IsRecurring:     ev.Recurrence != nil,
		Importance:      ev.Importance,
		ShowAs:          ev.ShowAs,
		Categories:      ev.Categories,
		WebLink:         ev.WebLink,
		BodyPreview:     ev.BodyPreview,
		SyncedAt:        syncedAt.UTC().Format(time.RFC3339),
	}

	if out.Subject == "" {
		out.Subject = view.PlaceholderSubject
	}

	if ev.Start != nil {
		out.Start = view.DateTimeZone{DateTime: ev.Start.DateTime, TimeZone: ev.Start.TimeZone}
	}
	if ev.End != nil {
		out.End = view.DateTimeZone{DateTime: ev.End.DateTime, TimeZone: ev.End.TimeZone}
	}
	if ev.Location != nil {
		out.Location = ev.Location.DisplayName
	}
	if ev.OnlineMeeting != nil {
		out.OnlineMeetingURL = ev.OnlineMeeting.JoinURL
	}
	if ev.Organiser != nil {
		out.Organizer = ev.Organiser.EmailAddress.Address
	}
	if ev.Body != nil && ev.Body.Content != "" {
		out.BodyPreview = previewOf(ev.Body.Content)
	}

	for _, a := range ev.Attendees {
		status := "none"
		if a.Status != nil && a.Status.Response != "" {
			status = a.Status.Response
		}
		out.Attendees = append(out.Attendees, view.Attendee{
			Email:  a.EmailAddress.Address,
			Name:   a.EmailAddress.Name,
			Status: attendeeStatus(status),
		})
	}

	return out
}

// NormaliseAll converts a batch of Graph events, stamping each with the
// same sync time.
func NormaliseAll(events []Event, syncedAt time.Time) []view.Event {
	out := make([]view.Event, 0, len(events))
	for i := range events {
		out = append(out, Normalise(&events[i], syncedAt))
	}
	return out
}

// attendeeStatus collapses a Graph response status to the four-way enum.
func attendeeStatus(response string) view.AttendeeStatus {
	switch response {
	case "accepted", "organizer":
		return view.StatusAccepted
	case "declined":
		return view.StatusDeclined
	case "tentativelyAccepted", "tentative":
		return view.StatusTentative
	default:
		return view.StatusNone
	}
}

// previewOf truncates body content to the preview limit and then strips
// HTML tags. Truncation happens on the raw markup first, so a preview cut
// mid-tag simply loses that tag's text.
func previewOf(content string) string {
	runes := []rune(content)
	if len(runes) > previewLimit {
		content = string(runes[:previewLimit])
	}
	return stripHTMLTags(content)
}

// stripHTMLTags removes HTML tags from a string (simple implementation).
func stripHTMLTags(s string) string {
	var result strings.Builder
	var inTag bool

	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
