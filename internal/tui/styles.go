package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Normal   lipgloss.Style
	Outside  lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Event    lipgloss.Style
	Teams    lipgloss.Style
	Canc     lipgloss.Style
	Help     lipgloss.Style
	Status   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Underline(true),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Outside: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Today: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("220")).
			Bold(true),
		Event: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")),
		Teams: lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")),
		Canc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
