package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 78

func orDash(s, dash string) string {
	if s == "" {
		return dash
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatDaylight renders a minute count as 13h05m.
func FormatDaylight(mins int) string {
	if mins <= 0 {
		return "--"
	}
	return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
}

func short(weekday string) string {
	if len(weekday) < 3 {
		return weekday
	}
	return weekday[:3]
}

// WriteTable writes days as an aligned text table.
func WriteTable(w io.Writer, site string, days []Daily) {
	fmt.Fprintf(w, "Almanac for %s\n", site)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	if len(days) == 0 {
		fmt.Fprintln(w, "No days in range")
		return
	}

	fmt.Fprintf(w, "%-10s %-3s %-3s %-7s %-7s %-5s %-8s %-20s %s\n",
		"Date", "Day", "DST", "Sunrise", "Sunset", "Noon", "Daylight", "Moon", "Season")
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	for _, d := range days {
		fmt.Fprintf(w, "%-10s %-3s %-3s %-7s %-7s %-5s %-8s %-15s %3.0f%% %s\n",
			d.Date,
			short(d.Weekday),
			yesNo(d.DST),
			orDash(d.Sunrise, "--:--"),
			orDash(d.Sunset, "--:--"),
			d.SolarNoon,
			FormatDaylight(d.DaylightMins),
			Title(d.MoonName),
			d.Illumination*100,
			Title(d.Season),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d days\n", len(days))
}

// WriteDay writes a single day as a labelled card.
func WriteDay(w io.Writer, d Daily) {
	row := func(label, value string) {
		fmt.Fprintf(w, "%-10s %s\n", label, value)
	}
	row("Site", d.Site)
	row("Date", fmt.Sprintf("%s (%s, day %d)", d.Date, d.Weekday, d.DayOfYear))
	row("DST", yesNo(d.DST))
	row("Sunrise", orDash(d.Sunrise, "none"))
	row("Sunset", orDash(d.Sunset, "none"))
	row("Noon", d.SolarNoon)
	row("Daylight", FormatDaylight(d.DaylightMins))
	row("Moon", fmt.Sprintf("%s (%.0f%% lit, phase %.3f)", Title(d.MoonName), d.Illumination*100, d.MoonPhase))
	row("Season", Title(d.Season))
}

// WriteInstant writes an instant as a labelled card.
func WriteInstant(w io.Writer, in Instant) {
	row := func(label, value string) {
		fmt.Fprintf(w, "%-10s %s\n", label, value)
	}
	civil := in.Civil
	if in.DST {
		civil += " (DST)"
	}
	row("Site", in.Site)
	row("Standard", in.Standard)
	row("Civil", civil)
	row("UTC", in.UTC)
	row("Weekday", in.Weekday)
	row("GMST", in.GMST)
	row("LMST", in.LMST)
	row("Moon", fmt.Sprintf("%s (%.0f%% lit, phase %.3f)", Title(in.MoonName), in.Illumination*100, in.MoonPhase))
	row("Season", Title(in.Season))
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
