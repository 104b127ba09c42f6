package goals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rewardsdto "ecoscan/internal/modules/rewards/dto"
	"ecoscan/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type RewardsPort interface {
	Overview(ctx context.Context) (rewardsdto.OverviewOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// OverviewLoadedMsg is shared with the impact view for the leaderboard.
type OverviewLoadedMsg struct {
	Overview rewardsdto.OverviewOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     RewardsPort
	overview rewardsdto.OverviewOutput
	err      error
	loaded   bool
	bar      progress.Model
	body     viewport.Model
	now      func() time.Time
	width    int
	height   int
}

func New(port RewardsPort) Model {
	return Model{
		port: port,
		bar:  progress.New(progress.WithSolidFill(string(theme.Primary)), progress.WithWidth(24)),
		body: viewport.New(0, 0),
		now:  time.Now,
	}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

// Reload fetches a fresh overview.
func (m Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		out, err := m.port.Overview(context.Background())
		return OverviewLoadedMsg{Overview: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = max(10, m.width-4)
		m.body.Height = max(3, m.height-2)
		m.body.SetContent(m.render())
		return m, nil

	case OverviewLoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.overview = msg.Overview
		}
		m.body.SetContent(m.render())
		return m, nil
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return theme.Pane.Width(max(10, m.width-2)).Render(m.body.View())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("rewards: " + m.err.Error())
	}
	if !m.loaded {
		return theme.Muted.Render("Loading goals…")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Daily Challenges"))
	if len(m.overview.Challenges) > 0 {
		left := m.overview.Challenges[0].ExpiresAt.Sub(m.now()).Truncate(time.Minute)
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  resets in %s", left)))
	}
	sb.WriteString("\n\n")
	for _, c := range m.overview.Challenges {
		mark := theme.Muted.Render("○")
		if c.Completed {
			mark = theme.Good.Render("●")
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s\n", mark, lipgloss.NewStyle().Bold(true).Render(c.Title), theme.Warn.Render(fmt.Sprintf("+%d XP", c.Reward))))
		sb.WriteString("  " + theme.Muted.Render(c.Description) + "\n")
		sb.WriteString(fmt.Sprintf("  %s %s\n\n", m.bar.ViewAs(ratio(c.Progress, c.Target)), formatProgress(c.Progress, c.Target)))
	}

	sb.WriteString(theme.Title.Render("Achievements"))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %d/%d unlocked", m.overview.Unlocked, len(m.overview.Achievements))) + "\n\n")
	for _, a := range m.overview.Achievements {
		if a.Unlocked {
			sb.WriteString(theme.Good.Render("★ "+a.Title) + "  " + theme.Muted.Render(a.Description) + "\n")
			continue
		}
		sb.WriteString(theme.Muted.Render("☆ "+a.Title+"  "+a.Description) + "\n")
		sb.WriteString(fmt.Sprintf("  %s %s\n", m.bar.ViewAs(a.Percent/100), formatProgress(a.Progress, a.Target)))
	}
	return sb.String()
}

func ratio(progress, target float64) float64 {
	if target <= 0 {
		return 1
	}
	return min(1, progress/target)
}

func formatProgress(progress, target float64) string {
	if progress == float64(int(progress)) && target == float64(int(target)) {
		return fmt.Sprintf("%d/%d", int(progress), int(target))
	}
	return fmt.Sprintf("%.1f/%.0f", progress, target)
}
