package view

import (
	"fmt"
	"time"
)

// Week view shows hour rows 7 AM through 9 PM inclusive.
const (
	weekFirstHour = 7
	weekLastHour  = 21
)

// WeekDay is one column header of the week grid.
type WeekDay struct {
	Date  DateKey
	Label string
	Day   int
	Today bool
}

// WeekRow is one hour row across the seven day columns. Cells are never
// truncated: every event bucketed into a slot is shown.
type WeekRow struct {
	Hour  int
	Label string
	Cells [7][]EventRef
}

// WeekModel is the render model of the week view: 15 hour rows by 7 day
// columns regardless of event count.
type WeekModel struct {
	Title string
	Days  [7]WeekDay
	Rows  []WeekRow
}

// Week lays out the Sunday-anchored 7-day window containing the anchor date.
func (e *Engine) Week(store *Store, st State) WeekModel {
	anchor := st.Anchor.In(e.loc)
	startOfWeek := anchor.AddDate(0, 0, -int(anchor.Weekday()))
	startOfWeek = time.Date(startOfWeek.Year(), startOfWeek.Month(), startOfWeek.Day(), 0, 0, 0, 0, e.loc)
	endOfWeek := startOfWeek.AddDate(0, 0, 6)

	today := e.Today()

	var model WeekModel
	model.Title = weekTitle(startOfWeek, endOfWeek)
	for i := 0; i < 7; i++ {
		day := startOfWeek.AddDate(0, 0, i)
		key := dateKeyOf(day)
		model.Days[i] = WeekDay{
			Date:  key,
			Label: day.Format("Mon"),
			Day:   day.Day(),
			Today: key == today,
		}
	}

	buckets := e.bucketByDayHour(store.All())

	for hour := weekFirstHour; hour <= weekLastHour; hour++ {
		row := WeekRow{Hour: hour, Label: FormatHour(hour)}
		for i := 0; i < 7; i++ {
			key := dayHour{day: model.Days[i].Date, hour: hour}
			row.Cells[i] = e.refs(buckets[key])
		}
		model.Rows = append(model.Rows, row)
	}

	return model
}

// weekTitle renders the window as "Jun 9 - 15, 2024", spelling out the second
// month only when the window straddles a month boundary.
func weekTitle(start, end time.Time) string {
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s - %d, %d", start.Format(layoutShortDate), end.Day(), start.Year())
	}
	return fmt.Sprintf("%s - %s, %d", start.Format(layoutShortDate), end.Format(layoutShortDate), start.Year())
}
