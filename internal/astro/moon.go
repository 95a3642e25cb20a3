package astro

import (
	"math"

	"github.com/litescript/ls-almanac/internal/calendar"
)

// SynodicMonth is the mean new-moon to new-moon period in days.
const SynodicMonth = 29.530588853

// MoonPhase returns progress through the lunar cycle in [0, 1), with 0 at
// new moon. The reference new moon is 2000-01-06 00:00.
func MoonPhase(t calendar.Time) float64 {
	days := calendar.DayNumber(t.FullYear(), int(t.Month), int(t.Day)) -
		calendar.DayNumber(calendar.BaseYear, 1, 6)
	frac := float64(t.Clock()) / secondsPerDay

	p := (float64(days) + frac) / SynodicMonth
	return p - math.Floor(p)
}

// Illumination returns the lit fraction of the disc for phase p.
func Illumination(p float64) float64 {
	return (1 - math.Cos(2*math.Pi*p)) / 2
}

var phaseNames = [8]string{
	"new moon",
	"waxing crescent",
	"first quarter",
	"waxing gibbous",
	"full moon",
	"waning gibbous",
	"last quarter",
	"waning crescent",
}

// PhaseName names the nearest of the eight traditional phases.
func PhaseName(p float64) string {
	idx := int(math.Floor(p*8+0.5)) % 8
	if idx < 0 {
		idx += 8
	}
	return phaseNames[idx]
}

// MoonAge returns days since the last new moon.
func MoonAge(p float64) float64 {
	return p * SynodicMonth
}
