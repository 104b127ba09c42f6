package impact

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "ecoscan/internal/modules/progress/dto"
	rewardsdto "ecoscan/internal/modules/rewards/dto"
	"ecoscan/internal/platform/numfmt"
	"ecoscan/internal/ui/theme"
)

// Model renders environmental metrics and the leaderboard. It owns no port;
// the app model feeds it snapshots and reward overviews.
type Model struct {
	snapshot    progressdto.SnapshotOutput
	leaderboard []rewardsdto.LeaderboardEntryOutput
	health      progress.Model
	width       int
	height      int
}

func New() Model {
	return Model{
		health: progress.New(progress.WithGradient(string(theme.Red), string(theme.Primary))),
	}
}

func (m *Model) SetSnapshot(s progressdto.SnapshotOutput) { m.snapshot = s }

func (m *Model) SetLeaderboard(entries []rewardsdto.LeaderboardEntryOutput) {
	m.leaderboard = entries
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.health.Width = max(10, min(40, m.width/2-8))
	}
	return m, nil
}

func (m Model) View() string {
	leftW := m.width / 2
	rightW := m.width - leftW
	left := theme.Pane.Width(max(10, leftW-4)).Height(max(3, m.height-4)).Render(m.renderMetrics())
	right := theme.Pane.Width(max(10, rightW-4)).Height(max(3, m.height-4)).Render(m.renderLeaderboard())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderMetrics() string {
	s := m.snapshot
	row := func(label, value string) string {
		return fmt.Sprintf("%-18s %s\n", theme.Muted.Render(label), value)
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Environmental Impact") + "\n\n")
	sb.WriteString(row("CO₂ saved", theme.Good.Render(numfmt.Kg(s.TotalCO2Saved))))
	sb.WriteString(row("Trees equivalent", numfmt.Int(s.TreesEquivalent)))
	sb.WriteString(row("Car km offset", numfmt.Int(s.CarKmOffset)+" km"))
	sb.WriteString(row("Recent items", numfmt.Int(len(s.Detections))))
	sb.WriteString("\n" + theme.Title.Render("Earth Health") + "  " + numfmt.Percent(s.EarthHealth) + "\n")
	sb.WriteString(m.health.ViewAs(s.EarthHealth/100) + "\n")
	return sb.String()
}

func (m Model) renderLeaderboard() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Leaderboard") + "\n\n")
	if len(m.leaderboard) == 0 {
		sb.WriteString(theme.Muted.Render("Loading…"))
		return sb.String()
	}
	for _, e := range m.leaderboard {
		line := fmt.Sprintf("%2d. %s %-14s %s", e.Rank, e.Avatar, e.Name, numfmt.Kg(e.CO2Saved))
		switch {
		case e.IsUser:
			sb.WriteString(theme.Hot.Render(line+"  ← you") + "\n")
		case e.Rank == 1:
			sb.WriteString(theme.Warn.Render(line) + "\n")
		default:
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}
