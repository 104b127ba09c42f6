package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	detectordto "ecoscan/internal/modules/detector/dto"
	progressdto "ecoscan/internal/modules/progress/dto"
	recyclingdto "ecoscan/internal/modules/recycling/dto"
	rewardsdto "ecoscan/internal/modules/rewards/dto"
	"ecoscan/internal/platform/numfmt"
	"ecoscan/internal/ui/components"
	"ecoscan/internal/ui/theme"
	detectview "ecoscan/internal/ui/views/detect"
	goalsview "ecoscan/internal/ui/views/goals"
	impactview "ecoscan/internal/ui/views/impact"
	recyclingview "ecoscan/internal/ui/views/recycling"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type progressPort interface {
	Snapshot(ctx context.Context) (progressdto.SnapshotOutput, error)
	Dismiss(ctx context.Context) error
}

type detectorPort interface {
	Detect(ctx context.Context, material string) (detectordto.ScanOutput, error)
	Catalog(ctx context.Context) ([]detectordto.MaterialOutput, error)
}

type rewardsPort interface {
	Overview(ctx context.Context) (rewardsdto.OverviewOutput, error)
}

type recyclingPort interface {
	List(ctx context.Context, materials []string) ([]recyclingdto.PointOutput, error)
	Nearest(ctx context.Context, lat, lng float64, materials []string) (recyclingdto.NearestOutput, error)
}

// Options carries the non-port settings of the dashboard.
type Options struct {
	ScanDelay time.Duration
	Lat       float64
	Lng       float64
}

// refreshInterval makes timed milestone expiry visible without user input.
const refreshInterval = 250 * time.Millisecond

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDetect tabID = iota
	tabGoals
	tabImpact
	tabMap
	tabCount
)

var tabLabels = [tabCount]string{
	"Detect", "Goals", "Impact", "Map",
}

// ─── async messages ───────────────────────────────────────────────────────────

type refreshTickMsg struct{}

type snapshotLoadedMsg struct {
	snapshot progressdto.SnapshotOutput
	err      error
}

type dismissedMsg struct{ err error }

type catalogLoadedMsg struct {
	materials []detectordto.MaterialOutput
	err       error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Scan    key.Binding
	Dismiss key.Binding
	Filter  key.Binding
	Nearest key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":", "ctrl+k"), key.WithHelp(":/ctrl+k", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Scan:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "scan (Detect)")),
		Dismiss: key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x/esc", "dismiss milestone")),
		Filter:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "material filter (Map)")),
		Nearest: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nearest point (Map)")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Scan, k.Dismiss},
		{k.Filter, k.Nearest},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the milestone
// overlay, the global help overlay, and the command palette. All business
// logic is delegated to port interfaces; all rendering to sub-views.
type Model struct {
	progress progressPort
	detector detectorPort

	// sub-views (one per tab)
	detectView detectview.Model
	goalsView  goalsview.Model
	impactView impactview.Model
	mapView    recyclingview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	snapshot  progressdto.SnapshotOutput
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(progress progressPort, detector detectorPort, rewards rewardsPort, recycling recyclingPort, opts Options) Model {
	var scanPort detectview.DetectPort
	if detector != nil {
		scanPort = detectorPortBridge{p: detector}
	}

	palette := components.NewPalette()
	filters := []string{"all"}
	for _, mat := range recyclingview.Materials {
		filters = append(filters, strings.ToLower(mat))
	}
	palette.SetArguments("filter", filters)

	return Model{
		progress:   progress,
		detector:   detector,
		detectView: detectview.New(scanPort, opts.ScanDelay),
		goalsView:  goalsview.New(rewards),
		impactView: impactview.New(),
		mapView:    recyclingview.New(recycling, opts.Lat, opts.Lng),
		activeTab:  tabDetect,
		keys:       defaultKeys(),
		help:       newHelp(),
		palette:    palette,
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.detectView.Init(),
		m.goalsView.Init(),
		m.mapView.Init(),
		m.loadSnapshotCmd(),
		m.loadCatalogCmd(),
		refreshTick(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Background messages must still reach their owners while the palette
	// has focus; only key input is captured.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.loadSnapshotCmd(), refreshTick())

	case snapshotLoadedMsg:
		if msg.err != nil {
			m.status = "snapshot: " + msg.err.Error()
			return m, nil
		}
		m.applySnapshot(msg.snapshot)
		return m, nil

	case dismissedMsg:
		if msg.err != nil {
			m.status = "dismiss: " + msg.err.Error()
			return m, nil
		}
		m.snapshot.Milestone = nil
		return m, m.loadSnapshotCmd()

	case catalogLoadedMsg:
		if msg.err != nil {
			m.status = "catalog: " + msg.err.Error()
			return m, nil
		}
		slugs := make([]string, 0, len(msg.materials))
		for _, mat := range msg.materials {
			slugs = append(slugs, mat.Slug)
		}
		m.palette.SetArguments("detect", slugs)
		return m, nil

	case detectview.ScannedMsg:
		if msg.Err != nil {
			m.status = "scan failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("detected %s (+%d XP)", msg.Out.Material.Name, msg.Out.Record.XPGained)
			m.applySnapshot(msg.Out.Record.Snapshot)
		}
		var cmd tea.Cmd
		m.detectView, cmd = m.detectView.Update(msg)
		return m, tea.Batch(cmd, m.goalsView.Reload())

	case goalsview.OverviewLoadedMsg:
		if msg.Err == nil {
			m.impactView.SetLeaderboard(msg.Overview.Leaderboard)
		}
		var cmd tea.Cmd
		m.goalsView, cmd = m.goalsView.Update(msg)
		return m, cmd

	case recyclingview.PointsLoadedMsg, recyclingview.NearestMsg:
		var cmd tea.Cmd
		m.mapView, cmd = m.mapView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.activeTab == tabMap && m.mapView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, m.onTabEnter()
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, m.onTabEnter()
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":", "ctrl+k":
			cmd := m.palette.Open()
			return m, cmd
		case "x", "esc":
			if m.snapshot.Milestone != nil {
				return m, m.dismissCmd()
			}
		}
	}

	// Propagate the message to the active tab's sub-view. Spinner and toast
	// ticks always go to the detect view so a scan finishes off-tab.
	var tabCmd tea.Cmd
	if m.activeTab == tabDetect || !isKeyMsg(msg) {
		m.detectView, tabCmd = m.detectView.Update(msg)
		cmds = append(cmds, tabCmd)
	}
	if isKeyMsg(msg) || isMouseMsg(msg) {
		switch m.activeTab {
		case tabGoals:
			m.goalsView, tabCmd = m.goalsView.Update(msg)
		case tabImpact:
			m.impactView, tabCmd = m.impactView.Update(msg)
		case tabMap:
			m.mapView, tabCmd = m.mapView.Update(msg)
		}
		cmds = append(cmds, tabCmd)
	}

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.snapshot.Milestone != nil:
		ms := m.snapshot.Milestone
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center,
			components.RenderMilestone(ms.Title, ms.Description, ms.Icon, m.width/2))
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDetect:
		return m.detectView.View()
	case tabGoals:
		return m.goalsView.View()
	case tabImpact:
		return m.impactView.View()
	case tabMap:
		return m.mapView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := theme.Title.Render("♻ ecoscan") + "  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	s := m.snapshot
	left := theme.Good.Render(fmt.Sprintf("Lv %d · %s", s.Level, numfmt.Kg(s.TotalCO2Saved))) + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  ::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch strings.ToLower(parts[0]) {
	case "detect", "scan":
		m.activeTab = tabDetect
		if m.detectView.Scanning() {
			m.status = "scan already in progress"
			return m, nil
		}
		m.status = "scanning…"
		cmd := m.detectView.StartScan(arg)
		return m, cmd

	case "dismiss":
		return m, m.dismissCmd()

	case "goals", "challenges", "achievements":
		m.activeTab = tabGoals
		return m, m.goalsView.Reload()

	case "metrics", "impact", "leaderboard":
		m.activeTab = tabImpact
		return m, m.goalsView.Reload()

	case "map", "points":
		m.activeTab = tabMap
		return m, nil

	case "filter":
		if arg == "" {
			m.status = "usage: filter <plastic|metal|glass|paper|all>"
			return m, nil
		}
		m.activeTab = tabMap
		cmd := m.mapView.Toggle(arg)
		if cmd == nil {
			m.status = "unknown material: " + arg
			return m, nil
		}
		m.status = "filters: " + filterLabel(m.mapView.ActiveMaterials())
		return m, cmd

	case "nearest":
		m.activeTab = tabMap
		return m, m.mapView.FindNearest()

	case "help":
		m.showHelp = true
		return m, nil

	case "quit", "exit":
		return m, tea.Quit

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) applySnapshot(s progressdto.SnapshotOutput) {
	m.snapshot = s
	m.detectView.SetSnapshot(s)
	m.impactView.SetSnapshot(s)
}

func (m Model) onTabEnter() tea.Cmd {
	switch m.activeTab {
	case tabGoals, tabImpact:
		return m.goalsView.Reload()
	}
	return nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.detectView, _ = m.detectView.Update(sz)
	m.goalsView, _ = m.goalsView.Update(sz)
	m.impactView, _ = m.impactView.Update(sz)
	m.mapView, _ = m.mapView.Update(sz)
}

func newHelp() help.Model {
	h := help.New()
	h.ShowAll = true
	return h
}

func filterLabel(materials []string) string {
	if len(materials) == 0 {
		return "all"
	}
	return strings.Join(materials, ", ")
}

func isKeyMsg(msg tea.Msg) bool {
	_, ok := msg.(tea.KeyMsg)
	return ok
}

func isMouseMsg(msg tea.Msg) bool {
	_, ok := msg.(tea.MouseMsg)
	return ok
}

// ─── async commands ───────────────────────────────────────────────────────────

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (m Model) loadSnapshotCmd() tea.Cmd {
	if m.progress == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := m.progress.Snapshot(context.Background())
		return snapshotLoadedMsg{snapshot: s, err: err}
	}
}

func (m Model) loadCatalogCmd() tea.Cmd {
	if m.detector == nil {
		return nil
	}
	return func() tea.Msg {
		materials, err := m.detector.Catalog(context.Background())
		return catalogLoadedMsg{materials: materials, err: err}
	}
}

func (m Model) dismissCmd() tea.Cmd {
	if m.progress == nil {
		return nil
	}
	return func() tea.Msg {
		return dismissedMsg{err: m.progress.Dismiss(context.Background())}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type detectorPortBridge struct{ p detectorPort }

func (b detectorPortBridge) Scan(ctx context.Context) (detectordto.ScanOutput, error) {
	return b.p.Detect(ctx, "")
}

func (b detectorPortBridge) ScanMaterial(ctx context.Context, name string) (detectordto.ScanOutput, error) {
	return b.p.Detect(ctx, name)
}
