package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmsley-labs/graphcal/internal/view"
)

// fixedNow anchors the TUI tests to a Saturday in June 2024.
var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testModel(events ...view.Event) *Model {
	engine := view.NewEngine(time.UTC, func() time.Time { return fixedNow })
	store := view.NewStore()
	store.Replace(events)
	m := NewModel(engine, store, fixedNow, nil)
	m.width, m.height = 100, 40
	return m
}

func testEvents() []view.Event {
	return []view.Event{
		{
			ID:               "ev-1",
			Subject:          "Sprint review",
			Start:            view.DateTimeZone{DateTime: "2024-06-15T09:00:00"},
			End:              view.DateTimeZone{DateTime: "2024-06-15T10:00:00"},
			IsOnlineMeeting:  true,
			OnlineMeetingURL: "https://teams.microsoft.com/l/meetup-join/abc",
		},
		{
			ID:      "ev-2",
			Subject: "Dentist",
			Start:   view.DateTimeZone{DateTime: "2024-06-18T14:00:00"},
			End:     view.DateTimeZone{DateTime: "2024-06-18T15:00:00"},
		},
	}
}

func press(m *Model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestSwitchViewKeys(t *testing.T) {
	m := testModel()

	press(m, "w")
	assert.Equal(t, view.ModeWeek, m.nav.Mode)

	press(m, "d")
	assert.Equal(t, view.ModeDay, m.nav.Mode)

	press(m, "m")
	assert.Equal(t, view.ModeMonth, m.nav.Mode)
}

func TestTabCyclesViews(t *testing.T) {
	m := testModel()

	press(m, "tab")
	assert.Equal(t, view.ModeWeek, m.nav.Mode)

	press(m, "tab")
	assert.Equal(t, view.ModeDay, m.nav.Mode)

	press(m, "tab")
	assert.Equal(t, view.ModeMonth, m.nav.Mode)
}

func TestNavigateKeys(t *testing.T) {
	m := testModel()

	press(m, "l")
	assert.Equal(t, time.July, m.nav.Anchor.Month())

	press(m, "h")
	press(m, "h")
	assert.Equal(t, time.May, m.nav.Anchor.Month())

	press(m, "t")
	assert.Equal(t, fixedNow, m.nav.Anchor)
}

func TestNavigateKeys_WeekSteps(t *testing.T) {
	m := testModel()
	press(m, "w")

	press(m, "l")
	assert.Equal(t, 22, m.nav.Anchor.Day())

	press(m, "h")
	assert.Equal(t, 15, m.nav.Anchor.Day())
}

func TestArrowsMoveSelection(t *testing.T) {
	m := testModel()

	press(m, "right")
	require.NotNil(t, m.nav.Selected)
	assert.Equal(t, view.DateKey{Year: 2024, Month: time.June, Day: 16}, *m.nav.Selected)

	press(m, "down")
	assert.Equal(t, view.DateKey{Year: 2024, Month: time.June, Day: 23}, *m.nav.Selected)

	press(m, "up")
	press(m, "left")
	assert.Equal(t, view.DateKey{Year: 2024, Month: time.June, Day: 15}, *m.nav.Selected)
}

func TestArrowsNavigateOutsideMonthView(t *testing.T) {
	m := testModel()
	press(m, "d")

	press(m, "right")
	assert.Equal(t, 16, m.nav.Anchor.Day())

	press(m, "left")
	assert.Equal(t, 15, m.nav.Anchor.Day())
	assert.Nil(t, m.nav.Selected)
}

func TestEnterOpensDayView(t *testing.T) {
	m := testModel()

	press(m, "enter")
	assert.Equal(t, view.ModeDay, m.nav.Mode)
	assert.Equal(t, 15, m.nav.Anchor.Day())
}

func TestEnterOpensSelectedDay(t *testing.T) {
	m := testModel()

	press(m, "right")
	press(m, "right")
	press(m, "enter")

	assert.Equal(t, view.ModeDay, m.nav.Mode)
	assert.Equal(t, 17, m.nav.Anchor.Day())
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := testModel()
		cmd := press(m, key)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestHelpToggle(t *testing.T) {
	m := testModel()

	press(m, "?")
	assert.Contains(t, m.View(), "Graphcal Help")

	// Any key returns to the calendar.
	press(m, "x")
	assert.Contains(t, m.View(), "June 2024")
}

func TestRefresh(t *testing.T) {
	reloaded := []view.Event{{
		ID:      "ev-9",
		Subject: "Retro",
		Start:   view.DateTimeZone{DateTime: "2024-06-20T10:00:00"},
		End:     view.DateTimeZone{DateTime: "2024-06-20T11:00:00"},
	}}
	later := fixedNow.Add(time.Hour)

	m := testModel(testEvents()...)
	m.reload = func() ([]view.Event, time.Time, error) {
		return reloaded, later, nil
	}

	press(m, "r")

	assert.Equal(t, 1, m.store.Len())
	assert.Equal(t, later, m.lastSync)
	assert.Equal(t, "Refreshed", m.message)
}

func TestRefreshFailureKeepsStore(t *testing.T) {
	m := testModel(testEvents()...)
	m.reload = func() ([]view.Event, time.Time, error) {
		return nil, time.Time{}, errors.New("cache gone")
	}

	press(m, "r")

	assert.Equal(t, 2, m.store.Len())
	assert.Contains(t, m.message, "Refresh failed")
}

func TestViewMonth(t *testing.T) {
	m := testModel(testEvents()...)

	out := m.View()
	assert.Contains(t, out, "June 2024")
	assert.Contains(t, out, "Upcoming Teams meetings")
	assert.Contains(t, out, "Sprint review")
	assert.Contains(t, out, "2 synced events")
	assert.Contains(t, out, "last sync Jun 15, 2024 12:00 PM")
}

func TestViewMonth_SelectedDayList(t *testing.T) {
	m := testModel(testEvents()...)

	press(m, "right")
	press(m, "right")
	press(m, "right")

	out := m.View()
	assert.Contains(t, out, "Tuesday, June 18, 2024 (1 event)")
	assert.Contains(t, out, "Dentist")
}

func TestViewWeek(t *testing.T) {
	m := testModel(testEvents()...)
	m.width = 130
	press(m, "w")

	out := m.View()
	assert.Contains(t, out, "Jun 9 - 15, 2024")
	assert.Contains(t, out, "Sprint review")
}

func TestViewDay(t *testing.T) {
	m := testModel(testEvents()...)
	press(m, "d")

	out := m.View()
	assert.Contains(t, out, "Saturday, June 15, 2024")
	assert.Contains(t, out, "Sprint review")
	assert.NotContains(t, out, "Dentist")
}

func TestWindowSize(t *testing.T) {
	m := testModel()

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 50, m.height)
}
