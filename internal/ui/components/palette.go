package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ecoscan/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	hintNameStyle = lipgloss.NewStyle().Foreground(theme.Text)
)

const (
	maxPaletteHints = 6
	maxHistory      = 20
)

// PaletteCommand documents one palette command. Args is empty for commands
// that take no argument.
type PaletteCommand struct {
	Name string
	Args string
	Help string
}

func (c PaletteCommand) usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// PaletteCommands must stay in sync with the switch in app/model.go executePalette.
var PaletteCommands = []PaletteCommand{
	{Name: "detect", Help: "scan a random item"},
	{Name: "detect", Args: "<material>", Help: "scan a specific catalog item"},
	{Name: "dismiss", Help: "hide the milestone popup"},
	{Name: "goals", Help: "daily challenges and achievements"},
	{Name: "metrics", Help: "environmental impact"},
	{Name: "leaderboard", Help: "community ranking"},
	{Name: "map", Help: "recycling points"},
	{Name: "filter", Args: "<material|all>", Help: "toggle a map material filter"},
	{Name: "nearest", Help: "closest point to your location"},
	{Name: "help", Help: "key bindings"},
	{Name: "quit", Help: "leave ecoscan"},
}

// Palette is a command-palette overlay backed by bubbles/textinput. tab
// completes the command or its argument; up and down walk the history.
type Palette struct {
	input     textinput.Model
	visible   bool
	width     int
	arguments map[string][]string
	history   []string
	// cursor indexes history while browsing; -1 means the live input.
	cursor int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "detect, map, goals…"
	ti.CharLimit = 256
	return Palette{input: ti, arguments: map[string][]string{}, cursor: -1}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = -1
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

// SetArguments registers the completion candidates for command's argument.
func (p *Palette) SetArguments(command string, values []string) {
	p.arguments[command] = append([]string(nil), values...)
}

// History returns submitted commands, most recent first.
func (p Palette) History() []string {
	return append([]string(nil), p.history...)
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			p.remember(val)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if completed, ok := p.complete(p.input.Value()); ok {
				p.input.SetValue(completed)
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			if p.cursor+1 < len(p.history) {
				p.cursor++
				p.input.SetValue(p.history[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor >= 0 {
				p.cursor--
				value := ""
				if p.cursor >= 0 {
					value = p.history[p.cursor]
				}
				p.input.SetValue(value)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := p.matches(p.input.Value())

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for i, c := range matching {
			name := hintNameStyle
			if i == 0 {
				name = theme.Hot
			}
			sb.WriteString("  " + name.Render(padRight(c.usage(), 22)) + hintStyle.Render(c.Help) + "\n")
		}
	}
	sb.WriteString("\n" + hintStyle.Render("tab complete · ↑↓ history · esc close"))

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

// matches lists the commands relevant to input: prefix matches on the name
// while typing it, then every form of the chosen command.
func (p Palette) matches(input string) []PaletteCommand {
	typed := strings.ToLower(strings.TrimLeft(input, " "))
	name, _, hasArg := strings.Cut(typed, " ")
	var out []PaletteCommand
	for _, c := range PaletteCommands {
		ok := strings.HasPrefix(c.Name, name)
		if hasArg {
			ok = c.Name == name && c.Args != ""
		}
		if ok {
			out = append(out, c)
			if len(out) == maxPaletteHints {
				break
			}
		}
	}
	return out
}

func (p Palette) complete(input string) (string, bool) {
	typed := strings.TrimLeft(input, " ")
	name, arg, hasArg := strings.Cut(typed, " ")
	if !hasArg {
		for _, c := range PaletteCommands {
			if strings.HasPrefix(c.Name, strings.ToLower(name)) {
				if c.Name == strings.ToLower(name) {
					return c.Name + " ", true
				}
				return c.Name, true
			}
		}
		return "", false
	}
	arg = strings.TrimSpace(arg)
	for _, v := range p.arguments[strings.ToLower(name)] {
		if strings.HasPrefix(strings.ToLower(v), strings.ToLower(arg)) {
			return strings.ToLower(name) + " " + v, true
		}
	}
	return "", false
}

func (p *Palette) remember(val string) {
	if val == "" {
		return
	}
	if len(p.history) > 0 && p.history[0] == val {
		return
	}
	p.history = append([]string{val}, p.history...)
	if len(p.history) > maxHistory {
		p.history = p.history[:maxHistory]
	}
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s + " "
}
