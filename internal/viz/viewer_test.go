package viz

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func tallText(rows int) string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = fmt.Sprintf("row%02d", i)
	}
	return strings.Join(lines, "\n")
}

func send(v Viewer, msgs ...tea.Msg) Viewer {
	for _, msg := range msgs {
		m, _ := v.Update(msg)
		v = m.(Viewer)
	}
	return v
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewerScroll(t *testing.T) {
	v := NewViewer(ViewerConfig{Text: tallText(50)})
	v = send(v, tea.WindowSizeMsg{Width: 80, Height: 14})

	v = send(v, key("j"), key("down"))
	if v.offset != 2 {
		t.Errorf("expected offset 2, got %d", v.offset)
	}

	v = send(v, key("k"), key("k"), key("k"))
	if v.offset != 0 {
		t.Errorf("scrolling up should stop at 0, got %d", v.offset)
	}

	v = send(v, key("G"))
	if want := 50 - v.pageRows(); v.offset != want {
		t.Errorf("expected offset %d at bottom, got %d", want, v.offset)
	}

	v = send(v, key("pgdown"))
	if want := 50 - v.pageRows(); v.offset != want {
		t.Errorf("paging past the end should clamp to %d, got %d", want, v.offset)
	}

	v = send(v, key("g"))
	if v.offset != 0 {
		t.Errorf("expected offset 0 at top, got %d", v.offset)
	}
}

func TestViewerShortTextDoesNotScroll(t *testing.T) {
	v := NewViewer(ViewerConfig{Text: "x  \n   "})
	v = send(v, key("j"), key("G"))
	if v.offset != 0 {
		t.Errorf("expected offset 0, got %d", v.offset)
	}
}

func TestViewerThemeCycle(t *testing.T) {
	v := NewViewer(ViewerConfig{Theme: "cyberpunk"})
	if Themes[v.theme].Name != "cyberpunk" {
		t.Fatalf("expected cyberpunk, got %s", Themes[v.theme].Name)
	}

	for i := 0; i < len(Themes); i++ {
		v = send(v, key("t"))
	}
	if Themes[v.theme].Name != "cyberpunk" {
		t.Errorf("a full cycle should return to cyberpunk, got %s", Themes[v.theme].Name)
	}

	if NewViewer(ViewerConfig{Theme: "nope"}).theme != 0 {
		t.Error("unknown theme should fall back to the first")
	}
}

func TestViewerQuit(t *testing.T) {
	v := NewViewer(ViewerConfig{})
	_, cmd := v.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewerView(t *testing.T) {
	v := NewViewer(ViewerConfig{
		Title:   "logo",
		Text:    tallText(50),
		Metrics: map[string]float64{"ink_coverage": 0.25, "mean_luminance": 0.5},
		Profile: []float64{1, 2, 3},
	})
	v = send(v, tea.WindowSizeMsg{Width: 100, Height: 14}, key("j"))

	out := v.View()
	for _, want := range []string{"LOGO", "row01", "ink_coverage", "0.2500", "mean_luminance", "2-11/50"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, "row00") {
		t.Error("scrolled-off row should not be visible")
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 4); got != "────" {
		t.Errorf("expected flat line for no data, got %q", got)
	}
	if got := SparklineChart([]float64{1}, 0); got != "" {
		t.Errorf("expected empty for zero width, got %q", got)
	}
	out := SparklineChart([]float64{0, 1, 2, 3}, 4)
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("expected lowest and highest bars, got %q", out)
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("retro").Name != "retro" {
		t.Error("expected retro theme")
	}
	if GetTheme("missing").Name != "minimal" {
		t.Error("expected minimal fallback")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}
