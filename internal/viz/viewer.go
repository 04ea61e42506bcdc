package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	chromeRows   = 4 // title, blank, footer, border slack
)

type ViewerConfig struct {
	Title   string
	Text    string
	Metrics map[string]float64
	Profile []float64
	Theme   string
}

// Viewer scrolls a rendered text next to its stats.
type Viewer struct {
	title   string
	lines   []string
	metrics map[string]float64
	profile []float64
	theme   int
	offset  int
	width   int
	height  int
}

func NewViewer(cfg ViewerConfig) Viewer {
	lines := []string{}
	if cfg.Text != "" {
		lines = strings.Split(cfg.Text, "\n")
	}
	return Viewer{
		title:   cfg.Title,
		lines:   lines,
		metrics: cfg.Metrics,
		profile: cfg.Profile,
		theme:   themeIndex(cfg.Theme),
		width:   80,
		height:  24,
	}
}

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.offset = v.clamp(v.offset)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "down", "j":
			v.offset = v.clamp(v.offset + 1)
		case "up", "k":
			v.offset = v.clamp(v.offset - 1)
		case "pgdown", " ":
			v.offset = v.clamp(v.offset + v.pageRows())
		case "pgup":
			v.offset = v.clamp(v.offset - v.pageRows())
		case "g", "home":
			v.offset = 0
		case "G", "end":
			v.offset = v.clamp(len(v.lines))
		case "t":
			v.theme = (v.theme + 1) % len(Themes)
		}
	}
	return v, nil
}

func (v Viewer) View() string {
	st := newStyles(Themes[v.theme])

	header := st.title.Render(strings.ToUpper(v.title)) + "  " + st.label.Render(Themes[v.theme].Name)

	rows := v.pageRows()
	end := v.offset + rows
	if end > len(v.lines) {
		end = len(v.lines)
	}
	paneWidth := v.width - sidebarWidth - 4
	if paneWidth < 1 {
		paneWidth = 1
	}
	visible := make([]string, 0, rows)
	for _, line := range v.lines[v.offset:end] {
		visible = append(visible, truncate(line, paneWidth))
	}
	pane := st.body.Width(paneWidth).Render(strings.Join(visible, "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, pane, "  ", st.panel.Render(v.sidebar(st)))

	footer := st.keyCap.Render("j/k") + st.hint.Render(" scroll  ") +
		st.keyCap.Render("t") + st.hint.Render(" theme  ") +
		st.keyCap.Render("q") + st.hint.Render(" quit  ") +
		st.label.Render(fmt.Sprintf("%d-%d/%d", min(v.offset+1, end), end, len(v.lines)))

	return header + "\n\n" + body + "\n" + footer + "\n"
}

func (v Viewer) sidebar(st styles) string {
	inner := sidebarWidth - 4

	var b strings.Builder
	b.WriteString(st.title.Render("stats") + "\n")

	names := make([]string, 0, len(v.metrics))
	for name := range v.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(st.label.Render(name) + "\n")
		b.WriteString(st.value.Render(fmt.Sprintf("  %.4f", v.metrics[name])) + "\n")
	}

	if c, ok := v.metrics["ink_coverage"]; ok {
		b.WriteString("\n" + st.label.Render("coverage") + "\n" + ProgressBar(c, inner) + "\n")
	}
	if len(v.profile) > 0 {
		b.WriteString("\n" + st.label.Render("rows") + "\n" + SparklineChart(v.profile, inner))
	}
	return b.String()
}

func (v Viewer) pageRows() int {
	rows := v.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (v Viewer) clamp(offset int) int {
	maxOffset := len(v.lines) - v.pageRows()
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func truncate(line string, width int) string {
	r := []rune(line)
	if len(r) <= width {
		return line
	}
	return string(r[:width])
}

// Run shows the viewer full screen until the user quits.
func Run(cfg ViewerConfig) error {
	_, err := tea.NewProgram(NewViewer(cfg), tea.WithAltScreen()).Run()
	return err
}
