package view

import (
	"fmt"
	"time"
)

// fixedNow is the reference instant used by engine tests.
var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// testEngine returns an engine pinned to UTC and a fixed clock.
func testEngine() *Engine {
	return NewEngine(time.UTC, func() time.Time { return fixedNow })
}

// mkEvent builds a minimal event starting at the given naive timestamp with
// a one hour duration.
func mkEvent(id, start string) Event {
	return mkEventRange(id, start, plusHour(start))
}

func mkEventRange(id, start, end string) Event {
	return Event{
		ID:      id,
		Subject: "Event " + id,
		Start:   DateTimeZone{DateTime: start, TimeZone: "UTC"},
		End:     DateTimeZone{DateTime: end, TimeZone: "UTC"},
	}
}

func plusHour(start string) string {
	t := ParseInstant(DateTimeZone{DateTime: start})
	return t.Add(time.Hour).Format("2006-01-02T15:04:05")
}

// mkEvents builds n events on the same day, minutes apart.
func mkEvents(n int, day string) []Event {
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		start := fmt.Sprintf("%sT09:%02d:00", day, i)
		events = append(events, mkEvent(fmt.Sprintf("e%d", i), start))
	}
	return events
}
