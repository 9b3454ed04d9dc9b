package view

import (
	"strings"
	"time"
)

// AttendeeStatus is the response status of an invited attendee.
type AttendeeStatus string

const (
	StatusAccepted  AttendeeStatus = "accepted"
	StatusDeclined  AttendeeStatus = "declined"
	StatusTentative AttendeeStatus = "tentative"
	StatusNone      AttendeeStatus = "none"
)

// Attendee is one invited participant of an event.
type Attendee struct {
	Email  string         `json:"email"`
	Name   string         `json:"name"`
	Status AttendeeStatus `json:"status"`
}

// DateTimeZone is a naive local date-time string paired with a time zone
// marker, as returned by the Graph API.
type DateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Event is a normalised calendar event as held by the Store. Immutable once
// synced; identity is ID.
type Event struct {
	ID               string       `json:"id"`
	Subject          string       `json:"subject"`
	Start            DateTimeZone `json:"start"`
	End              DateTimeZone `json:"end"`
	Location         string       `json:"location,omitempty"`
	IsOnlineMeeting  bool         `json:"isOnlineMeeting"`
	OnlineMeetingURL string       `json:"onlineMeetingUrl,omitempty"`
	Attendees        []Attendee   `json:"attendees,omitempty"`
	BodyPreview      string       `json:"bodyPreview,omitempty"`
	Organizer        string       `json:"organizer,omitempty"`
	IsCancelled      bool         `json:"isCancelled"`
	IsRecurring      bool         `json:"isRecurring"`
	Importance       string       `json:"importance,omitempty"`
	ShowAs           string       `json:"showAs,omitempty"`
	Categories       []string     `json:"categories,omitempty"`
	WebLink          string       `json:"webLink,omitempty"`
	SyncedAt         string       `json:"syncedAt,omitempty"`
}

// PlaceholderSubject substitutes for an absent event subject.
const PlaceholderSubject = "(No title)"

// DisplaySubject returns the subject, or a placeholder when absent.
func (e Event) DisplaySubject() string {
	if e.Subject == "" {
		return PlaceholderSubject
	}
	return e.Subject
}

// parse layouts for upstream date-time strings, tried in order after the UTC
// marker has been appended.
var instantLayouts = []string{
	time.RFC3339,           // 2024-06-10T09:00:00Z (fractional seconds accepted)
	"2006-01-02T15:04Z07:00", // minute precision, no seconds
}

// ParseInstant reinterprets a naive upstream date-time string as UTC and
// returns the resulting instant. The upstream time zone marker is ignored on
// purpose: the original application always appended a UTC marker before
// parsing, and which calendar day an event lands in depends on that exact
// behaviour. Returns the zero time for unparseable input.
func ParseInstant(dt DateTimeZone) time.Time {
	s := strings.TrimSuffix(strings.TrimSpace(dt.DateTime), "Z") + "Z"
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// StartInstant returns the event's normalised start instant.
func (e Event) StartInstant() time.Time {
	return ParseInstant(e.Start)
}

// EndInstant returns the event's normalised end instant.
func (e Event) EndInstant() time.Time {
	return ParseInstant(e.End)
}
