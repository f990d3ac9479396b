// Package styles defines the visual styling for the dashboard.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the codexmeter theme.
var (
	Primary = lipgloss.Color("39")  // Blue
	Subtle  = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// TitleStyle is used for the panel title.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary)

// PanelStyle is the bordered dashboard panel container.
var PanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 1)

// LabelStyle styles bar labels.
var LabelStyle = lipgloss.NewStyle().
	Foreground(TextPrimary)

// DetailStyle styles the detail line beneath a bar.
var DetailStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// FooterStyle styles the dashboard footer.
var FooterStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// ErrorStyle styles error and warning notices.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Error)

// OutdatedStyle marks stale rate-limit windows.
var OutdatedStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Warning)

// GetPercentStyle returns a color keyed to how much quota is consumed.
func GetPercentStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 90:
		return lipgloss.NewStyle().Foreground(Error).Bold(true)
	case percent >= 70:
		return lipgloss.NewStyle().Foreground(Warning)
	default:
		return lipgloss.NewStyle().Foreground(Success)
	}
}
