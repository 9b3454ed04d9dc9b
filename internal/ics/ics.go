// Package ics writes the synced calendar as an iCalendar stream, so events
// can be pulled into any other calendar client.
package ics

import (
	"strings"
	"time"

	"github.com/helmsley-labs/graphcal/internal/view"
)

// MIMEType is the iCalendar media type.
const MIMEType = "text/calendar"

// foldWidth is the octet budget per content line before folding, per RFC
// 5545 §3.1.
const foldWidth = 75

// Calendar serialises events into a VCALENDAR. The calendar name goes out as
// X-WR-CALNAME; events keep their store order.
func Calendar(name string, events []view.Event) string {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//helmsley-labs//graphcal//EN")
	writeLine(&b, "CALSCALE:GREGORIAN")
	if name != "" {
		writeProp(&b, "X-WR-CALNAME", name)
	}

	for _, ev := range events {
		writeEvent(&b, ev)
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

func writeEvent(b *strings.Builder, ev view.Event) {
	writeLine(b, "BEGIN:VEVENT")
	writeProp(b, "UID", ev.ID)
	writeProp(b, "SUMMARY", ev.DisplaySubject())

	if stamp := formatDateTime(ev.Start); stamp != "" {
		writeLine(b, "DTSTART:"+stamp)
	}
	if stamp := formatDateTime(ev.End); stamp != "" {
		writeLine(b, "DTEND:"+stamp)
	}
	if stamp := formatSyncedAt(ev.SyncedAt); stamp != "" {
		writeLine(b, "DTSTAMP:"+stamp)
	}

	if ev.Location != "" {
		writeProp(b, "LOCATION", ev.Location)
	}
	if ev.BodyPreview != "" {
		writeProp(b, "DESCRIPTION", ev.BodyPreview)
	}
	if ev.Organizer != "" {
		writeLine(b, foldLine("ORGANIZER:mailto:"+ev.Organizer))
	}
	for _, att := range ev.Attendees {
		if att.Email == "" {
			continue
		}
		writeLine(b, foldLine("ATTENDEE;PARTSTAT="+partStat(att.Status)+":mailto:"+att.Email))
	}

	if ev.IsOnlineMeeting && ev.OnlineMeetingURL != "" {
		writeProp(b, "URL", ev.OnlineMeetingURL)
	} else if ev.WebLink != "" {
		writeProp(b, "URL", ev.WebLink)
	}

	if ev.IsCancelled {
		writeLine(b, "STATUS:CANCELLED")
	} else {
		writeLine(b, "STATUS:CONFIRMED")
	}

	writeLine(b, "END:VEVENT")
}

// partStat maps the normalised attendee status to RFC 5545 PARTSTAT values.
func partStat(status view.AttendeeStatus) string {
	switch status {
	case view.StatusAccepted:
		return "ACCEPTED"
	case view.StatusDeclined:
		return "DECLINED"
	case view.StatusTentative:
		return "TENTATIVE"
	default:
		return "NEEDS-ACTION"
	}
}

// formatDateTime renders the stored naive timestamp in basic UTC form,
// 20060102T150405Z. Unparseable timestamps are dropped.
func formatDateTime(dtz view.DateTimeZone) string {
	t := view.ParseInstant(dtz)
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("20060102T150405Z")
}

func formatSyncedAt(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return ""
	}
	return t.UTC().Format("20060102T150405Z")
}

// writeProp writes one property with an escaped text value.
func writeProp(b *strings.Builder, prop, value string) {
	writeLine(b, foldLine(prop+":"+escapeValue(value)))
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

// escapeValue applies the iCalendar text escapes. Backslash goes first so
// the other escapes are not doubled.
func escapeValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, ";", "\\;")
	value = strings.ReplaceAll(value, ",", "\\,")
	value = strings.ReplaceAll(value, "\r\n", "\\n")
	value = strings.ReplaceAll(value, "\n", "\\n")
	return value
}

// foldLine folds long content lines, continuations indented with one space.
func foldLine(line string) string {
	if len(line) <= foldWidth {
		return line
	}

	var b strings.Builder
	for len(line) > foldWidth {
		cut := foldWidth
		// Never split a UTF-8 sequence.
		for cut > 1 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
	}
	b.WriteString(line)
	return b.String()
}
