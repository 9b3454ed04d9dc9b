package view

import "time"

// DateKey identifies one calendar day in the engine's display location.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

// dateKeyOf truncates a local time to its date identity.
func dateKeyOf(t time.Time) DateKey {
	return DateKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Date materialises the key as a midnight time in the given location.
func (k DateKey) Date(loc *time.Location) time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// IsZero reports whether the key is the zero value.
func (k DateKey) IsZero() bool {
	return k == DateKey{}
}

// MonthDayKey maps an event's normalised start instant to the calendar day
// it falls on in the engine's display location. Total: unparseable starts
// bucket to the zero key.
func (e *Engine) MonthDayKey(ev Event) DateKey {
	t := ev.StartInstant()
	if t.IsZero() {
		return DateKey{}
	}
	return dateKeyOf(t.In(e.loc))
}

// DayHourKey maps an event's normalised start instant to its calendar day
// and hour (0-23) in the engine's display location.
func (e *Engine) DayHourKey(ev Event) (DateKey, int) {
	t := ev.StartInstant()
	if t.IsZero() {
		return DateKey{}, 0
	}
	local := t.In(e.loc)
	return dateKeyOf(local), local.Hour()
}

// bucketByDay groups events by calendar day, preserving insertion order
// within each bucket.
func (e *Engine) bucketByDay(events []Event) map[DateKey][]Event {
	buckets := make(map[DateKey][]Event)
	for _, ev := range events {
		key := e.MonthDayKey(ev)
		buckets[key] = append(buckets[key], ev)
	}
	return buckets
}

// dayHour pairs a day with an hour slot, the bucket key for week view.
type dayHour struct {
	day  DateKey
	hour int
}

// bucketByDayHour groups events by day and hour, preserving insertion order
// within each bucket.
func (e *Engine) bucketByDayHour(events []Event) map[dayHour][]Event {
	buckets := make(map[dayHour][]Event)
	for _, ev := range events {
		day, hour := e.DayHourKey(ev)
		key := dayHour{day: day, hour: hour}
		buckets[key] = append(buckets[key], ev)
	}
	return buckets
}
