package view

import (
	"fmt"
	"time"
)

// MaxDayEvents is how many events a month cell shows before collapsing the
// remainder into an overflow count.
const MaxDayEvents = 3

// monthRows is the fixed grid height; minMonthRows is the floor the grid may
// shrink to when the month is exhausted early.
const (
	monthRows    = 6
	minMonthRows = 4
)

// MonthCell is one day cell of the month grid. Cells belonging to the
// adjacent months are inert: they carry a day number but no events and no
// interaction.
type MonthCell struct {
	Day      int
	InMonth  bool
	Today    bool
	Selected bool
	Events   []EventRef
	Overflow int
}

// MonthWeek is one row of seven day cells.
type MonthWeek [7]MonthCell

// SelectedDayList is the supplementary event list shown next to the month
// grid once a day has been selected.
type SelectedDayList struct {
	Title  string
	Count  int
	Events []Detail
}

// MonthModel is the render model of the month view.
type MonthModel struct {
	Title       string
	Year        int
	Month       time.Month
	Weeks       []MonthWeek
	SelectedDay *SelectedDayList
}

// Month lays out the month containing the anchor date as a fixed grid of
// 7-day rows. The grid always has six rows unless the month's days are
// exhausted after at least four, matching the original layout policy that
// keeps short months visually stable.
func (e *Engine) Month(store *Store, st State) MonthModel {
	anchor := st.Anchor.In(e.loc)
	year, month := anchor.Year(), anchor.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, e.loc)

	firstWeekday := int(first.Weekday())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	daysInPrevMonth := first.AddDate(0, 0, -1).Day()

	today := e.Today()
	buckets := e.bucketByDay(store.All())

	model := MonthModel{
		Title: first.Format(layoutMonthTitle),
		Year:  year,
		Month: month,
	}

	dayCount := 1
	nextMonthDay := 1
	for week := 0; week < monthRows; week++ {
		var row MonthWeek
		for dow := 0; dow < 7; dow++ {
			cellIndex := week*7 + dow
			switch {
			case cellIndex < firstWeekday:
				row[dow] = MonthCell{Day: daysInPrevMonth - firstWeekday + cellIndex + 1}
			case dayCount <= daysInMonth:
				key := DateKey{Year: year, Month: month, Day: dayCount}
				row[dow] = e.monthCell(key, buckets[key], today, st.Selected)
				dayCount++
			default:
				row[dow] = MonthCell{Day: nextMonthDay}
				nextMonthDay++
			}
		}
		model.Weeks = append(model.Weeks, row)

		if dayCount > daysInMonth && week >= minMonthRows-1 {
			break
		}
	}

	if st.Selected != nil {
		model.SelectedDay = e.selectedDayList(store, *st.Selected)
	}

	return model
}

// monthCell builds one in-month cell, truncating its events to MaxDayEvents.
func (e *Engine) monthCell(key DateKey, events []Event, today DateKey, selected *DateKey) MonthCell {
	cell := MonthCell{
		Day:      key.Day,
		InMonth:  true,
		Today:    key == today,
		Selected: selected != nil && key == *selected,
	}

	shown := events
	if len(shown) > MaxDayEvents {
		shown = shown[:MaxDayEvents]
		cell.Overflow = len(events) - MaxDayEvents
	}
	cell.Events = e.refs(shown)

	return cell
}

// selectedDayList projects the selected day's events for the side list.
func (e *Engine) selectedDayList(store *Store, key DateKey) *SelectedDayList {
	var details []Detail
	for _, ev := range store.All() {
		if e.MonthDayKey(ev) == key {
			details = append(details, e.Detail(ev))
		}
	}

	date := key.Date(e.loc)
	return &SelectedDayList{
		Title:  fmt.Sprintf("%s (%d %s)", date.Format(layoutDayTitle), len(details), plural(len(details), "event")),
		Count:  len(details),
		Events: details,
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
