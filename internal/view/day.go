package view

import (
	"fmt"
	"sort"
)

// Day view shows hour rows 6 AM through 10 PM inclusive.
const (
	dayFirstHour = 6
	dayLastHour  = 22
)

// DayEvent is one event entry in an hour slot of the day agenda.
type DayEvent struct {
	ID        string
	Subject   string
	TimeRange string
	Location  string
	Teams     bool
	Cancelled bool
}

// DaySlot is one hour row of the day agenda. Slots without events are still
// rendered so the agenda keeps its 17-row height.
type DaySlot struct {
	Hour      int
	Label     string
	HasEvents bool
	Events    []DayEvent
}

// DayModel is the render model of the day view.
type DayModel struct {
	Title      string
	Weekday    string
	DateLabel  string
	Date       DateKey
	Today      bool
	EventCount int
	Slots      []DaySlot
}

// Day filters the store to events falling on the anchor date, sorts them
// ascending by start instant, and lays them out under their hour slots.
func (e *Engine) Day(store *Store, st State) DayModel {
	anchor := st.Anchor.In(e.loc)
	key := dateKeyOf(anchor)

	var events []Event
	for _, ev := range store.All() {
		if e.MonthDayKey(ev) == key {
			events = append(events, ev)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartInstant().Before(events[j].StartInstant())
	})

	byHour := make(map[int][]Event)
	for _, ev := range events {
		_, hour := e.DayHourKey(ev)
		byHour[hour] = append(byHour[hour], ev)
	}

	model := DayModel{
		Title:      anchor.Format(layoutDayTitle),
		Weekday:    anchor.Format("Monday"),
		DateLabel:  anchor.Format("January 2, 2006"),
		Date:       key,
		Today:      key == e.Today(),
		EventCount: len(events),
	}

	for hour := dayFirstHour; hour <= dayLastHour; hour++ {
		slot := DaySlot{Hour: hour, Label: FormatHour(hour)}
		for _, ev := range byHour[hour] {
			slot.Events = append(slot.Events, e.dayEvent(ev))
		}
		slot.HasEvents = len(slot.Events) > 0
		model.Slots = append(model.Slots, slot)
	}

	return model
}

// dayEvent projects an event into its agenda entry form.
func (e *Engine) dayEvent(ev Event) DayEvent {
	return DayEvent{
		ID:      ev.ID,
		Subject: ev.DisplaySubject(),
		TimeRange: fmt.Sprintf("%s - %s",
			e.localStart(ev).Format(layoutEventTime),
			e.localEnd(ev).Format(layoutEventTime)),
		Location:  ev.Location,
		Teams:     ev.IsOnlineMeeting,
		Cancelled: ev.IsCancelled,
	}
}
