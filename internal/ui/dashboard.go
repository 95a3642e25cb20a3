package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/calendar"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/state"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dstStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)
)

// panelWidth is the width of each panel inside its border.
const panelWidth = 36

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-9s", label)) + " " + valueStyle.Render(value)
}

func panel(title string, rows ...string) string {
	body := titleStyle.Render(title) + "\n" + strings.Join(rows, "\n")
	return panelStyle.Width(panelWidth).Render(body)
}

func clockPanel(s state.Snapshot) string {
	civil := s.Civil.String()
	if s.DST {
		civil += " " + dstStyle.Render("DST")
	}
	weekday := report.Weekday(calendar.DayOfWeek(s.Local))
	return panel("Clock",
		row("Civil", civil),
		row("Standard", s.Local.String()),
		row("UTC", s.UTC.String()),
		row("Day", fmt.Sprintf("%s, day %d", weekday, calendar.DayOfYear(s.Local))),
		row("Season", report.Title(s.Season.String())),
	)
}

func sunPanel(s state.Snapshot) string {
	rise, set := "none", "none"
	if s.HasSunrise {
		rise = s.Sunrise.ClockString()[:5]
	}
	if s.HasSunset {
		set = s.Sunset.ClockString()[:5]
	}
	return panel("Sun (standard time)",
		row("Sunrise", rise),
		row("Sunset", set),
	)
}

func moonPanel(s state.Snapshot) string {
	return panel("Moon",
		row("Phase", report.Title(s.MoonName)),
		row("Lit", fmt.Sprintf("%.0f%%", s.Illumination*100)),
		renderPhaseBar(s.MoonPhase, panelWidth-4),
	)
}

func siderealPanel(s state.Snapshot) string {
	return panel("Sidereal",
		row("GMST", s.GMST.ClockString()),
		row("LMST", s.LMST.ClockString()),
	)
}

func eventsPanel(s state.Snapshot, n int) string {
	events := s.Events
	if len(events) > n {
		events = events[len(events)-n:]
	}
	if len(events) == 0 {
		return panel("Events", labelStyle.Render("none yet"))
	}
	rows := make([]string, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		line := e.Timestamp.Format("15:04:05") + " " + string(e.Type)
		if e.Detail != "" {
			line += " " + e.Detail
		}
		rows = append(rows, valueStyle.Render(line))
	}
	return panel("Events", rows...)
}

// renderPhaseBar draws progress through the lunation, new moon at the left
// edge and full moon in the middle.
func renderPhaseBar(phase float64, width int) string {
	if width < 1 {
		return "[]"
	}
	filled := int(phase * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// renderPanels lays the panels out in two columns when the terminal is wide
// enough and one column otherwise.
func renderPanels(s state.Snapshot, width int) string {
	left := []string{clockPanel(s), sunPanel(s)}
	right := []string{moonPanel(s), siderealPanel(s)}
	events := eventsPanel(s, 6)

	if width < 2*(panelWidth+4) {
		all := append(append(left, right...), events)
		return lipgloss.JoinVertical(lipgloss.Left, all...)
	}
	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)
	return lipgloss.JoinVertical(lipgloss.Left, cols, events)
}
