package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/helmsley-labs/graphcal/internal/view"
)

const monthCellWidth = 5

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (m *Model) viewMonth() string {
	model := m.engine.Month(m.store, m.nav)

	var lines []string
	lines = append(lines, m.styles.Title.Render(model.Title))
	lines = append(lines, "")

	var header strings.Builder
	for _, day := range weekdayHeaders {
		header.WriteString(pad(day, monthCellWidth))
	}
	lines = append(lines, m.styles.Header.Render(header.String()))

	for _, week := range model.Weeks {
		var row strings.Builder
		for _, cell := range week {
			row.WriteString(m.renderMonthCell(cell))
		}
		lines = append(lines, row.String())
	}

	lines = append(lines, "")
	if model.SelectedDay != nil {
		lines = append(lines, m.renderSelectedDay(model.SelectedDay)...)
	} else {
		lines = append(lines, m.renderTeamsMeetings()...)
	}

	lines = append(lines, "", m.statusBar())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderMonthCell renders one fixed-width day cell. A dot marks days that
// carry events.
func (m *Model) renderMonthCell(cell view.MonthCell) string {
	marker := " "
	if len(cell.Events) > 0 {
		marker = "•"
	}
	text := pad(fmt.Sprintf("%2d%s", cell.Day, marker), monthCellWidth)

	switch {
	case !cell.InMonth:
		return m.styles.Outside.Render(text)
	case cell.Selected:
		return m.styles.Selected.Render(text)
	case cell.Today:
		return m.styles.Today.Render(text)
	default:
		return m.styles.Normal.Render(text)
	}
}

func (m *Model) renderSelectedDay(list *view.SelectedDayList) []string {
	lines := []string{m.styles.Header.Render(list.Title)}
	if len(list.Events) == 0 {
		return append(lines, m.styles.Help.Render("  No events."))
	}
	for _, d := range list.Events {
		lines = append(lines, "  "+m.renderDetailLine(d))
	}
	return lines
}

func (m *Model) renderDetailLine(d view.Detail) string {
	line := d.TimeLine + "  " + d.Subject
	if d.HasLocation {
		line += " (" + d.Location + ")"
	}
	switch {
	case d.Cancelled:
		line = m.styles.Canc.Render(line)
	case d.Teams:
		line = m.styles.Teams.Render(line + " ⌂")
	default:
		line = m.styles.Event.Render(line)
	}
	return line
}

func (m *Model) renderTeamsMeetings() []string {
	meetings := m.engine.TeamsMeetings(m.store)

	lines := []string{m.styles.Header.Render("Upcoming Teams meetings")}
	if len(meetings) == 0 {
		return append(lines, m.styles.Help.Render("  No upcoming Teams meetings."))
	}
	for _, d := range meetings {
		lines = append(lines, "  "+m.styles.Teams.Render(d.DateLine+"  "+d.TimeLine+"  "+d.Subject))
	}
	return lines
}

func (m *Model) viewWeek() string {
	model := m.engine.Week(m.store, m.nav)

	colWidth := m.columnWidth(8, 7)

	var lines []string
	lines = append(lines, m.styles.Title.Render(model.Title))
	lines = append(lines, "")

	var header strings.Builder
	header.WriteString(pad("", 8))
	for _, day := range model.Days {
		label := fmt.Sprintf("%s %d", day.Label, day.Day)
		cell := pad(truncate(label, colWidth-1), colWidth)
		if day.Today {
			cell = m.styles.Today.Render(cell)
		} else {
			cell = m.styles.Header.Render(cell)
		}
		header.WriteString(cell)
	}
	lines = append(lines, header.String())

	for _, row := range model.Rows {
		var b strings.Builder
		b.WriteString(m.styles.Help.Render(pad(row.Label, 8)))
		for _, cell := range row.Cells {
			b.WriteString(m.renderWeekCell(cell, colWidth))
		}
		lines = append(lines, b.String())
	}

	lines = append(lines, "", m.statusBar())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderWeekCell shows the first event of a slot and a count for the rest.
func (m *Model) renderWeekCell(refs []view.EventRef, width int) string {
	if len(refs) == 0 {
		return pad("", width)
	}

	text := refs[0].Subject
	if len(refs) > 1 {
		text = fmt.Sprintf("%s +%d", text, len(refs)-1)
	}
	text = pad(truncate(text, width-1), width)

	if refs[0].Cancelled {
		return m.styles.Canc.Render(text)
	}
	if refs[0].Teams {
		return m.styles.Teams.Render(text)
	}
	return m.styles.Event.Render(text)
}

func (m *Model) viewDay() string {
	model := m.engine.Day(m.store, m.nav)

	var lines []string
	title := model.Title
	if model.Today {
		title += "  (today)"
	}
	lines = append(lines, m.styles.Title.Render(title))
	lines = append(lines, m.styles.Help.Render(
		fmt.Sprintf("%d %s", model.EventCount, plural(model.EventCount, "event"))))
	lines = append(lines, "")

	for _, slot := range model.Slots {
		label := m.styles.Help.Render(pad(slot.Label, 8))
		if !slot.HasEvents {
			lines = append(lines, label)
			continue
		}
		for i, ev := range slot.Events {
			prefix := label
			if i > 0 {
				prefix = pad("", 8)
			}
			entry := ev.TimeRange + "  " + ev.Subject
			if ev.Location != "" {
				entry += " (" + ev.Location + ")"
			}
			switch {
			case ev.Cancelled:
				entry = m.styles.Canc.Render(entry)
			case ev.Teams:
				entry = m.styles.Teams.Render(entry + " ⌂")
			default:
				entry = m.styles.Event.Render(entry)
			}
			lines = append(lines, prefix+entry)
		}
	}

	lines = append(lines, "", m.statusBar())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewHelp() string {
	help := []string{
		m.styles.Title.Render("Graphcal Help"),
		"",
		m.styles.Normal.Render("Views:"),
		m.styles.Help.Render("  m/w/d   - Month, week, day view"),
		m.styles.Help.Render("  tab     - Cycle views"),
		"",
		m.styles.Normal.Render("Navigation:"),
		m.styles.Help.Render("  h/l     - Previous / next period"),
		m.styles.Help.Render("  arrows  - Move day selection (month view)"),
		m.styles.Help.Render("  enter   - Open selected day"),
		m.styles.Help.Render("  t       - Go to today"),
		"",
		m.styles.Normal.Render("Actions:"),
		m.styles.Help.Render("  r       - Reload synced events"),
		m.styles.Help.Render("  ?       - Toggle help"),
		m.styles.Help.Render("  q       - Quit"),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) statusBar() string {
	left := fmt.Sprintf(" %d synced %s", m.store.Len(), plural(m.store.Len(), "event"))
	if !m.lastSync.IsZero() {
		left += " | last sync " + m.lastSync.In(m.engine.Location()).Format("Jan 2, 2006 3:04 PM")
	}

	right := "? for help | q to quit "
	if m.message != "" {
		right = m.message + " "
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 1 {
		width = 1
	}

	return m.styles.Status.Render(left + strings.Repeat(" ", width) + right)
}

// columnWidth splits the remaining width after a fixed gutter into n columns.
func (m *Model) columnWidth(gutter, n int) int {
	width := (m.width - gutter) / n
	if width < 8 {
		width = 8
	}
	return width
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
