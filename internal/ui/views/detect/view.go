package detect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	detectordto "ecoscan/internal/modules/detector/dto"
	progressdto "ecoscan/internal/modules/progress/dto"
	"ecoscan/internal/platform/numfmt"
	"ecoscan/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type DetectPort interface {
	Scan(ctx context.Context) (detectordto.ScanOutput, error)
	ScanMaterial(ctx context.Context, name string) (detectordto.ScanOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// ScannedMsg carries the outcome of one scan. The app model also reads it to
// refresh the snapshot and rewards.
type ScannedMsg struct {
	Out detectordto.ScanOutput
	Err error
}

type scanReadyMsg struct{ material string }

type toastExpiredMsg struct{ seq int }

const (
	toastDuration = 1500 * time.Millisecond
	recentLimit   = 8
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      DetectPort
	scanDelay time.Duration
	spinner   spinner.Model
	xpBar     progress.Model
	snapshot  progressdto.SnapshotOutput
	last      *detectordto.ScanOutput
	lastErr   error
	scanning  bool
	toast     string
	toastSeq  int
	width     int
	height    int
}

func New(port DetectPort, scanDelay time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Globe
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	bar := progress.New(progress.WithGradient(string(theme.Teal), string(theme.Primary)), progress.WithoutPercentage())

	return Model{
		port:      port,
		scanDelay: scanDelay,
		spinner:   sp,
		xpBar:     bar,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Scanning reports whether a scan is in flight.
func (m Model) Scanning() bool { return m.scanning }

// SetSnapshot replaces the progress data the view renders.
func (m *Model) SetSnapshot(s progressdto.SnapshotOutput) { m.snapshot = s }

// StartScan begins a scan after the configured delay. material may be empty
// for a random detection. Scans do not overlap.
func (m *Model) StartScan(material string) tea.Cmd {
	if m.scanning || m.port == nil {
		return nil
	}
	m.scanning = true
	m.lastErr = nil
	return tea.Batch(m.spinner.Tick, tea.Tick(m.scanDelay, func(time.Time) tea.Msg {
		return scanReadyMsg{material: material}
	}))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.xpBar.Width = max(10, min(48, m.width/2-8))

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			cmd := m.StartScan("")
			return m, cmd
		}

	case scanReadyMsg:
		return m, m.scanCmd(msg.material)

	case ScannedMsg:
		m.scanning = false
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		out := msg.Out
		m.last = &out
		m.snapshot = out.Record.Snapshot
		m.toastSeq++
		m.toast = fmt.Sprintf("+%d XP", out.Record.XPGained)
		seq := m.toastSeq
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	leftW := m.width / 2
	rightW := m.width - leftW
	scanner := theme.Pane
	if m.scanning {
		scanner = theme.PaneActive
	}
	left := scanner.Width(max(10, leftW-4)).Height(max(3, m.height-4)).Render(m.renderScanner())
	right := theme.Pane.Width(max(10, rightW-4)).Height(max(3, m.height-4)).Render(m.renderRecent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderScanner() string {
	s := m.snapshot
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Waste Detection") + "\n\n")

	sb.WriteString(fmt.Sprintf("%s %d   %s %d days\n",
		theme.Muted.Render("Level"), s.Level, theme.Muted.Render("Streak"), s.Streak))
	ratio := 0.0
	if s.NextLevelXP > 0 {
		ratio = float64(s.XP) / float64(s.NextLevelXP)
	}
	sb.WriteString(m.xpBar.ViewAs(ratio) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s / %s XP", numfmt.Int(s.XP), numfmt.Int(s.NextLevelXP))) + "\n\n")

	switch {
	case m.scanning:
		sb.WriteString(m.spinner.View() + " Analyzing waste item…\n")
	case m.lastErr != nil:
		sb.WriteString(theme.Bad.Render("scan failed: "+m.lastErr.Error()) + "\n")
	case m.last != nil:
		last := m.last
		sb.WriteString(lipgloss.NewStyle().Foreground(theme.CategoryColor(last.Material.Category)).Bold(true).Render(last.Material.Name))
		sb.WriteString(theme.Muted.Render("  "+last.Material.Category) + "\n")
		sb.WriteString(fmt.Sprintf("confidence %.0f%%   saved %s CO₂\n",
			last.Record.Detection.Confidence*100, numfmt.Kg(last.Record.Detection.CO2Saved)))
	default:
		sb.WriteString(theme.Muted.Render("Point the camera at a waste item.") + "\n")
	}
	if m.toast != "" {
		sb.WriteString("\n" + theme.Hot.Render(m.toast) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: scan   :detect <material>"))
	return sb.String()
}

func (m Model) renderRecent() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Recent Detections") + "\n\n")
	if len(m.snapshot.Detections) == 0 {
		sb.WriteString(theme.Muted.Render("No detections yet."))
		return sb.String()
	}
	for i, d := range m.snapshot.Detections {
		if i == recentLimit {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("… %d more", len(m.snapshot.Detections)-recentLimit)))
			break
		}
		sb.WriteString(fmt.Sprintf("%s  %-16s %s  %s\n",
			theme.Muted.Render(d.Timestamp.Format("15:04:05")),
			d.Material,
			theme.Good.Render(numfmt.Kg(d.CO2Saved)),
			theme.Muted.Render(fmt.Sprintf("%.0f%%", d.Confidence*100)),
		))
	}
	return sb.String()
}

func (m Model) scanCmd(material string) tea.Cmd {
	return func() tea.Msg {
		var (
			out detectordto.ScanOutput
			err error
		)
		if material != "" {
			out, err = m.port.ScanMaterial(context.Background(), material)
		} else {
			out, err = m.port.Scan(context.Background())
		}
		return ScannedMsg{Out: out, Err: err}
	}
}
