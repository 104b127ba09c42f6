package theme

import "github.com/charmbracelet/lipgloss"

var (
	Mantle   = lipgloss.Color("#0b140f")
	Surface0 = lipgloss.Color("#1d2b23")
	Surface1 = lipgloss.Color("#2f4338")
	Text     = lipgloss.Color("#e3f2e8")
	Subtext0 = lipgloss.Color("#9bb5a4")
	Primary  = lipgloss.Color("#4ade80")
	Teal     = lipgloss.Color("#2dd4bf")
	Sky      = lipgloss.Color("#7dd3fc")
	Yellow   = lipgloss.Color("#facc15")
	Peach    = lipgloss.Color("#fb923c")
	Red      = lipgloss.Color("#f87171")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Primary)

	Title = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Primary)
	Warn  = lipgloss.NewStyle().Foreground(Yellow)
	Bad   = lipgloss.NewStyle().Foreground(Red)
)

// CategoryColor is the accent for a material category.
func CategoryColor(category string) lipgloss.Color {
	switch category {
	case "Plastic":
		return Sky
	case "Metal":
		return Subtext0
	case "Glass":
		return Teal
	case "Paper":
		return Yellow
	}
	return Text
}
