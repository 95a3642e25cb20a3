// Package report assembles almanac readings for a day or an instant and
// writes them as text tables or JSON.
package report

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/calendar"
)

var weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var title = cases.Title(language.English)

// Weekday names a 1=Sunday..7=Saturday day code.
func Weekday(code int) string {
	if code < 1 || code > 7 {
		return "?"
	}
	return weekdays[code-1]
}

// Title capitalizes each word of a season or phase name.
func Title(s string) string {
	return title.String(s)
}

// Daily is one day of the almanac for a site. Clock fields are civil
// (DST-adjusted) wall time in HH:MM.
type Daily struct {
	Site         string  `json:"site"`
	Date         string  `json:"date"`
	Weekday      string  `json:"weekday"`
	DayOfYear    int     `json:"day_of_year"`
	DST          bool    `json:"dst"`
	Sunrise      string  `json:"sunrise,omitempty"`
	Sunset       string  `json:"sunset,omitempty"`
	SolarNoon    string  `json:"solar_noon"`
	DaylightMins int     `json:"daylight_minutes"`
	MoonPhase    float64 `json:"moon_phase"`
	MoonName     string  `json:"moon_name"`
	Illumination float64 `json:"illumination"`
	Season       string  `json:"season"`
}

// Instant is the almanac evaluated at a single standard-time instant.
type Instant struct {
	Site         string  `json:"site"`
	Standard     string  `json:"standard"`
	Civil        string  `json:"civil"`
	UTC          string  `json:"utc"`
	DST          bool    `json:"dst"`
	Weekday      string  `json:"weekday"`
	GMST         string  `json:"gmst"`
	LMST         string  `json:"lmst"`
	MoonPhase    float64 `json:"moon_phase"`
	MoonName     string  `json:"moon_name"`
	Illumination float64 `json:"illumination"`
	Season       string  `json:"season"`
}

func hhmm(t calendar.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// minutesBetween returns b - a in minutes, across date boundaries.
func minutesBetween(a, b calendar.Time) int {
	days := dayNumber(b) - dayNumber(a)
	return int(days)*1440 + (b.Clock()-a.Clock())/60
}

// civil shifts a standard-time reading onto the wall clock.
func civil(a *almanac.Almanac, t calendar.Time) calendar.Time {
	a.DST(&t)
	return t
}

// Build evaluates the almanac for the date of t. Moon and season readings
// are taken at t itself.
func Build(a *almanac.Almanac, site string, t calendar.Time) Daily {
	d := Daily{
		Site:      site,
		Date:      t.DateString(),
		Weekday:   Weekday(int(a.DayOfWeek(&t))),
		DayOfYear: calendar.DayOfYear(t),
		DST:       a.InDST(t),
		Season:    a.Season(&t).String(),
	}

	noon := a.SolarNoon(t)
	n := t
	n.Hour, n.Minute, n.Second = 0, 0, 0
	calendar.Adjust(&n, int64(noon))
	d.SolarNoon = hhmm(civil(a, n))

	rise, set := t, t
	okRise := a.SunRise(&rise)
	okSet := a.SunSet(&set)
	if okRise {
		d.Sunrise = hhmm(civil(a, rise))
	}
	if okSet {
		d.Sunset = hhmm(civil(a, set))
	}
	if okRise && okSet {
		d.DaylightMins = minutesBetween(rise, set)
	}

	d.MoonPhase = a.MoonPhase(&t)
	d.MoonName = astro.PhaseName(d.MoonPhase)
	d.Illumination = astro.Illumination(d.MoonPhase)
	return d
}

// BuildInstant evaluates the almanac at standard local time t.
func BuildInstant(a *almanac.Almanac, site string, t calendar.Time) Instant {
	utc := t
	a.GMT(&utc)

	gmst, lmst := t, t
	a.Sidereal(&gmst, false)
	a.Sidereal(&lmst, true)

	phase := a.MoonPhase(&t)
	return Instant{
		Site:         site,
		Standard:     t.String(),
		Civil:        civil(a, t).String(),
		UTC:          utc.String(),
		DST:          a.InDST(t),
		Weekday:      Weekday(int(a.DayOfWeek(&t))),
		GMST:         gmst.ClockString(),
		LMST:         lmst.ClockString(),
		MoonPhase:    phase,
		MoonName:     astro.PhaseName(phase),
		Illumination: astro.Illumination(phase),
		Season:       a.Season(&t).String(),
	}
}

// Month builds one Daily per day of month in year, each evaluated at
// standard-time noon.
func Month(a *almanac.Almanac, site string, year, month int) []Daily {
	t := calendar.Date(year, month, 1, 12, 0, 0)
	n := calendar.LengthOfMonth(t)
	days := make([]Daily, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, Build(a, site, t))
		calendar.AddDays(&t, 1)
	}
	return days
}

// MaxRangeDays caps the number of rows Range returns.
const MaxRangeDays = 3660

func dayNumber(t calendar.Time) int64 {
	return calendar.DayNumber(t.FullYear(), int(t.Month), int(t.Day))
}

// Range builds one Daily per day from from through to inclusive, at most
// MaxRangeDays rows. The walk stops at the end of 2099 rather than
// wrapping back to 2000.
func Range(a *almanac.Almanac, site string, from, to calendar.Time) []Daily {
	t := from
	t.Hour, t.Minute, t.Second = 12, 0, 0
	last := dayNumber(to)

	var days []Daily
	for n := dayNumber(t); n <= last && len(days) < MaxRangeDays; {
		days = append(days, Build(a, site, t))
		calendar.AddDays(&t, 1)
		next := dayNumber(t)
		if next <= n {
			break
		}
		n = next
	}
	return days
}
