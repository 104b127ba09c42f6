package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ecoscan/internal/ui/theme"
)

var (
	milestoneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Yellow).
			Background(theme.Surface0).
			Foreground(theme.Text).
			Padding(1, 4).
			Align(lipgloss.Center)

	milestoneTitle = lipgloss.NewStyle().Foreground(theme.Yellow).Bold(true)
)

var milestoneGlyphs = map[string]string{
	"level-up":         "⬆",
	"eco-beginner":     "🌱",
	"green-champion":   "🌿",
	"eco-warrior":      "🛡",
	"planet-protector": "🌍",
}

// MilestoneGlyph maps a milestone icon name to a terminal glyph.
func MilestoneGlyph(icon string) string {
	if g, ok := milestoneGlyphs[icon]; ok {
		return g
	}
	return "★"
}

// RenderMilestone draws the milestone announcement box.
func RenderMilestone(title, description, icon string, width int) string {
	var sb strings.Builder
	sb.WriteString(MilestoneGlyph(icon) + "\n\n")
	sb.WriteString(milestoneTitle.Render(title) + "\n")
	sb.WriteString(description + "\n\n")
	sb.WriteString(theme.Muted.Render("x / esc to dismiss"))
	w := width
	if w < 20 || w > 56 {
		w = 56
	}
	return milestoneStyle.Width(w).Render(sb.String())
}
