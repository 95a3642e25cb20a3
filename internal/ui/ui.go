// Package ui provides the terminal dashboard using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/version"
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a state refresh at the carried instant.
	TickMsg time.Time

	// AnimTickMsg advances the footer spinner.
	AnimTickMsg time.Time
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	width    int
	height   int
	ready    bool
	animTick int

	snapshot state.Snapshot
	lastErr  error
}

// New creates the dashboard model over mgr.
func New(mgr *state.Manager) Model {
	return Model{state: mgr}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return TickMsg(time.Now()) },
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m = m.refresh(time.Now())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		m = m.refresh(time.Time(msg))
		return m, tickCmd(m.state.RefreshInterval())

	case AnimTickMsg:
		m.animTick++
		return m, animTickCmd()
	}
	return m, nil
}

func (m Model) refresh(now time.Time) Model {
	m.lastErr = m.state.Update(now)
	m.snapshot = m.state.Snapshot()
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + renderPanels(m.snapshot, m.width) + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := "  ls-almanac"
	runes := []rune(title)

	var b strings.Builder
	b.WriteString("\n")
	for col, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Render(string(r)))
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	site := m.snapshot.Site
	if site == "" {
		site = "-"
	}
	b.WriteString(muted.Render(fmt.Sprintf("  %s · v%s", site, version.Version)))
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color for column col of a width-wide title,
// running blue -> purple -> pink.
func gradientColor(col, width int) string {
	x := 0.0
	if width > 1 {
		x = float64(col) / float64(width-1)
	}

	var r, g, b float64
	if x < 0.5 {
		t := x / 0.5
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else {
		t := (x - 0.5) / 0.5
		r = 139 + t*(236-139)
		g = 92 + t*(72-92)
		b = 246 + t*(153-246)
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

func clamp(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return int(v)
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.lastErr != nil:
		status = errorStyle.Render("ERROR: " + m.lastErr.Error())
	case m.snapshot.Updated.IsZero():
		status = accentStyle.Render(spinner) + dimStyle.Render(" waiting for first reading")
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" updated "+m.snapshot.Updated.Format("15:04:05"))
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render("r: refresh | q: quit")
}

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = time.Second
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
