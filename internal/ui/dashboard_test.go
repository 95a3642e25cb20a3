package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/state"
)

func TestRenderPhaseBar(t *testing.T) {
	tests := []struct {
		name       string
		phase      float64
		width      int
		wantFilled int
	}{
		{"new", 0.0, 10, 0},
		{"full", 0.5, 10, 5},
		{"quarter", 0.25, 8, 2},
		{"nearly new", 0.99, 10, 9},
		{"over", 1.5, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderPhaseBar(tt.phase, tt.width)
			if !strings.HasPrefix(bar, "[") || !strings.HasSuffix(bar, "]") {
				t.Errorf("bar should have brackets, got %q", bar)
			}
			if got := strings.Count(bar, "█"); got != tt.wantFilled {
				t.Errorf("filled count = %d, want %d", got, tt.wantFilled)
			}
			if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != tt.width {
				t.Errorf("bar width = %d, want %d", got, tt.width)
			}
		})
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 10); got != "#3B82F6" {
		t.Errorf("left edge = %s, want #3B82F6", got)
	}
	if got := gradientColor(9, 10); got != "#EC4899" {
		t.Errorf("right edge = %s, want #EC4899", got)
	}
	if got := gradientColor(0, 1); got != "#3B82F6" {
		t.Errorf("single column = %s", got)
	}
}

func newModel() Model {
	return New(state.NewManager(almanac.New(), "tampa", state.DefaultConfig()))
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		_, cmd := newModel().Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", key)
		}
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	if got := newModel().View(); got != "Initializing..." {
		t.Errorf("View = %q", got)
	}
}

func TestModel_TickRendersPanels(t *testing.T) {
	var m tea.Model = newModel()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, cmd := m.Update(TickMsg(time.Date(2023, 3, 12, 17, 0, 0, 0, time.UTC)))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	view := m.View()
	for _, want := range []string{
		"ls-almanac",
		"tampa",
		"2023-03-12 13:00:00",
		"06:39",
		"18:36",
		"Last Quarter",
		"04:20:19",
		"22:52:19",
		"none yet",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_TickOutOfRange(t *testing.T) {
	var m tea.Model = newModel()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 40})
	m, _ = m.Update(TickMsg(time.Date(2150, 1, 1, 0, 0, 0, 0, time.UTC)))

	if !strings.Contains(m.View(), "ERROR:") {
		t.Error("view should show the update error")
	}
}
