package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayState(y int, m time.Month, d int) State {
	return State{Mode: ModeDay, Anchor: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func TestDay_FixedSlotLayout(t *testing.T) {
	e := testEngine()

	model := e.Day(NewStore(), dayState(2024, time.June, 10))

	assert.Len(t, model.Slots, 17, "hour rows 6 AM through 10 PM")
	assert.Equal(t, 6, model.Slots[0].Hour)
	assert.Equal(t, "6 AM", model.Slots[0].Label)
	assert.Equal(t, 22, model.Slots[16].Hour)
	assert.Equal(t, "10 PM", model.Slots[16].Label)
	assert.Equal(t, "Monday, June 10, 2024", model.Title)
	assert.Equal(t, 0, model.EventCount)
}

func TestDay_SortsAscendingByStart(t *testing.T) {
	e := testEngine()

	store := NewStore()
	store.Replace([]Event{
		mkEvent("nine", "2024-06-10T09:00:00"),
		mkEvent("eight-thirty", "2024-06-10T08:30:00"),
	})

	model := e.Day(store, dayState(2024, time.June, 10))

	require.Equal(t, 2, model.EventCount)

	// 8 AM slot is index 2, 9 AM slot is index 3.
	eight := model.Slots[2]
	nine := model.Slots[3]
	require.Len(t, eight.Events, 1)
	require.Len(t, nine.Events, 1)
	assert.Equal(t, "eight-thirty", eight.Events[0].ID)
	assert.Equal(t, "nine", nine.Events[0].ID)
}

func TestDay_SameHourOrdering(t *testing.T) {
	e := testEngine()

	store := NewStore()
	store.Replace([]Event{
		mkEvent("later", "2024-06-10T09:45:00"),
		mkEvent("earlier", "2024-06-10T09:15:00"),
	})

	model := e.Day(store, dayState(2024, time.June, 10))

	slot := model.Slots[3]
	require.Len(t, slot.Events, 2)
	assert.Equal(t, "earlier", slot.Events[0].ID)
	assert.Equal(t, "later", slot.Events[1].ID)
}

func TestDay_FiltersToAnchorDate(t *testing.T) {
	e := testEngine()

	store := NewStore()
	store.Replace([]Event{
		mkEvent("on-day", "2024-06-10T09:00:00"),
		mkEvent("off-day", "2024-06-11T09:00:00"),
	})

	model := e.Day(store, dayState(2024, time.June, 10))

	assert.Equal(t, 1, model.EventCount)
}

func TestDay_EmptySlotsStillRendered(t *testing.T) {
	e := testEngine()

	store := NewStore()
	store.Replace([]Event{mkEvent("1", "2024-06-10T09:00:00")})

	model := e.Day(store, dayState(2024, time.June, 10))

	assert.Len(t, model.Slots, 17)
	var withEvents int
	for _, slot := range model.Slots {
		if slot.HasEvents {
			withEvents++
		}
	}
	assert.Equal(t, 1, withEvents)
}

func TestDay_EventFields(t *testing.T) {
	e := testEngine()

	ev := mkEventRange("1", "2024-06-10T09:00:00", "2024-06-10T10:30:00")
	ev.Location = "Room 4"
	ev.IsOnlineMeeting = true

	store := NewStore()
	store.Replace([]Event{ev})

	model := e.Day(store, dayState(2024, time.June, 10))

	slot := model.Slots[3]
	require.Len(t, slot.Events, 1)
	got := slot.Events[0]
	assert.Equal(t, "9:00 AM - 10:30 AM", got.TimeRange)
	assert.Equal(t, "Room 4", got.Location)
	assert.True(t, got.Teams)
}

func TestDay_TodayFlag(t *testing.T) {
	e := testEngine() // clock pinned to June 15, 2024

	assert.True(t, e.Day(NewStore(), dayState(2024, time.June, 15)).Today)
	assert.False(t, e.Day(NewStore(), dayState(2024, time.June, 10)).Today)
}
