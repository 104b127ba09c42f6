package recycling

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	recyclingdto "ecoscan/internal/modules/recycling/dto"
	"ecoscan/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PointsPort interface {
	List(ctx context.Context, materials []string) ([]recyclingdto.PointOutput, error)
	Nearest(ctx context.Context, lat, lng float64, materials []string) (recyclingdto.NearestOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PointsLoadedMsg struct {
	Points []recyclingdto.PointOutput
	Err    error
}

type NearestMsg struct {
	Out recyclingdto.NearestOutput
	Err error
}

// Materials are the filter toggles, bound to keys 1-4 in order.
var Materials = []string{"Plastic", "Metal", "Glass", "Paper"}

// ─── list item ───────────────────────────────────────────────────────────────

type pointItem struct {
	point recyclingdto.PointOutput
}

func (i pointItem) Title() string       { return i.point.Name }
func (i pointItem) Description() string { return strings.Join(i.point.Materials, " · ") }
func (i pointItem) FilterValue() string { return i.point.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    PointsPort
	origin  [2]float64
	active  map[string]bool
	list    list.Model
	detail  viewport.Model
	nearest *recyclingdto.NearestOutput
	status  string
	width   int
	height  int
}

func New(port PointsPort, lat, lng float64) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Primary).BorderForeground(theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Teal).BorderForeground(theme.Primary)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Recycling Points"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	return Model{
		port:   port,
		origin: [2]float64{lat, lng},
		active: map[string]bool{},
		list:   l,
		detail: vp,
	}
}

func (m Model) Init() tea.Cmd { return m.loadCmd() }

// ActiveMaterials returns the enabled filters in toggle order.
func (m Model) ActiveMaterials() []string {
	var out []string
	for _, mat := range Materials {
		if m.active[mat] {
			out = append(out, mat)
		}
	}
	return out
}

// Toggle flips the filter for material ("all" clears every filter) and
// reloads. Unknown materials are ignored.
func (m *Model) Toggle(material string) tea.Cmd {
	if strings.EqualFold(material, "all") {
		m.active = map[string]bool{}
		return m.loadCmd()
	}
	for _, mat := range Materials {
		if strings.EqualFold(mat, material) {
			m.active[mat] = !m.active[mat]
			return m.loadCmd()
		}
	}
	return nil
}

// FindNearest looks up the closest point accepting the active filters.
func (m Model) FindNearest() tea.Cmd {
	if m.port == nil {
		return nil
	}
	materials := m.ActiveMaterials()
	return func() tea.Msg {
		out, err := m.port.Nearest(context.Background(), m.origin[0], m.origin[1], materials)
		return NearestMsg{Out: out, Err: err}
	}
}

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case PointsLoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.status = ""
		items := make([]list.Item, len(msg.Points))
		for i, p := range msg.Points {
			items[i] = pointItem{point: p}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case NearestMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			m.nearest = nil
			return m, nil
		}
		out := msg.Out
		m.nearest = &out
		m.status = ""
		for i, item := range m.list.Items() {
			if p, ok := item.(pointItem); ok && p.point.ID == out.Point.ID {
				m.list.Select(i)
				break
			}
		}
		m.detail.SetContent(m.renderDetail())
		return m, nil

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "1", "2", "3", "4":
				idx := int(msg.String()[0] - '1')
				cmd := m.Toggle(Materials[idx])
				return m, cmd
			case "n":
				return m, m.FindNearest()
			}
		}
	}

	prev := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prev {
		m.detail.SetContent(m.renderDetail())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 45 / 100
	detailW := m.width - listW
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.renderFilters() + "\n" + m.list.View())
	detailPane := theme.Pane.Width(max(10, detailW-4)).Height(max(3, m.height-2)).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 45 / 100
	detailW := m.width - listW
	m.list.SetSize(listW, max(3, m.height-2))
	m.detail.Width = max(10, detailW-6)
	m.detail.Height = max(3, m.height-4)
}

func (m Model) renderFilters() string {
	parts := make([]string, 0, len(Materials))
	for i, mat := range Materials {
		label := fmt.Sprintf("%d:%s", i+1, mat)
		if m.active[mat] {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.CategoryColor(mat)).Bold(true).Render("["+label+"]"))
		} else {
			parts = append(parts, theme.Muted.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ") + theme.Muted.Render("  n:nearest")
}

func (m Model) renderDetail() string {
	var sb strings.Builder
	if m.status != "" {
		sb.WriteString(theme.Bad.Render(m.status) + "\n\n")
	}
	item, ok := m.list.SelectedItem().(pointItem)
	if !ok {
		sb.WriteString(theme.Muted.Render("No recycling point matches the filters."))
		return sb.String()
	}
	p := item.point
	sb.WriteString(theme.Title.Render(p.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("address: ") + p.Address + "\n")
	sb.WriteString(theme.Muted.Render("hours:   ") + p.Hours + "\n")
	sb.WriteString(theme.Muted.Render("phone:   ") + p.Phone + "\n")
	if p.Website != "" {
		sb.WriteString(theme.Muted.Render("web:     ") + p.Website + "\n")
	}
	sb.WriteString(theme.Muted.Render("accepts: ") + strings.Join(p.Materials, ", ") + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("coords:  %.4f, %.4f", p.Lat, p.Lng)) + "\n")
	if m.nearest != nil && m.nearest.Point.ID == p.ID {
		sb.WriteString("\n" + theme.Hot.Render(fmt.Sprintf("Nearest to you · %.1f km", m.nearest.DistanceKm)))
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	if m.port == nil {
		return nil
	}
	materials := m.ActiveMaterials()
	return func() tea.Msg {
		points, err := m.port.List(context.Background(), materials)
		return PointsLoadedMsg{Points: points, Err: err}
	}
}
