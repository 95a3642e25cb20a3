package astro

import (
	"math"

	"github.com/litescript/ls-almanac/internal/calendar"
)

const (
	// zenithRad is 90°50': the sun's centre below the horizon at apparent
	// rise or set, allowing for refraction and the solar radius.
	zenithRad = 1.585340737228125

	// radPerDay converts a day-of-year into the fractional-year angle
	// (2π / 365.25).
	radPerDay = 1.718771839885e-02

	// daysPerMonth is the mean month used to estimate day of year.
	daysPerMonth = 30.4375

	riseBiasHours = 6.0
	setBiasHours  = 18.0
)

// fractionalYear returns the angle through the year for the given date,
// evaluated at biasHours into the day.
func fractionalYear(t calendar.Time, biasHours float64) float64 {
	month := float64(t.Month) - 1
	day := float64(t.Day) - 1
	return (month*daysPerMonth + day + biasHours/24.0) * radPerDay
}

// equationOfTime returns apparent minus mean solar time, in minutes.
func equationOfTime(y float64) float64 {
	return 229.18 * (0.000075 + 0.001868*math.Cos(y) - 0.032077*math.Sin(y) -
		0.014615*math.Cos(2*y) - 0.040849*math.Sin(2*y))
}

// declination returns the solar declination in radians.
func declination(y float64) float64 {
	return 0.006918 - 0.399912*math.Cos(y) + 0.070257*math.Sin(y) -
		0.006758*math.Cos(2*y) + 0.000907*math.Sin(2*y) -
		0.002697*math.Cos(3*y) + 0.00148*math.Sin(3*y)
}

// SunEvent replaces t's time of day with the local wall-clock time of
// sunrise (rise) or sunset on t's date. offsetMinutes is the observer's
// UTC offset. When the sun does not cross the horizon that day it returns
// false and leaves t untouched.
func SunEvent(t *calendar.Time, obs Observer, offsetMinutes int, rise bool) bool {
	bias := setBiasHours
	if rise {
		bias = riseBiasHours
	}
	y := fractionalYear(*t, bias)

	eqt := equationOfTime(y)
	decl := declination(y)

	lat := degToRad(obs.LatDeg)
	lon := degToRad(-obs.LonDeg)

	ha := math.Cos(zenithRad)/(math.Cos(lat)*math.Cos(decl)) - math.Tan(lat)*math.Tan(decl)
	if math.Abs(ha) > 1 {
		// Polar day or night.
		return false
	}
	ha = math.Acos(ha)
	if !rise {
		ha = -ha
	}

	minutes := int(720 + 4*radToDeg(lon-ha) - eqt)
	minutes += offsetMinutes

	t.Hour = 0
	t.Minute = 0
	t.Second = 0
	calendar.Adjust(t, int64(minutes))
	return true
}

// SolarNoon returns the local wall-clock minute of the sun's transit on t's
// date, measured from local midnight.
func SolarNoon(t calendar.Time, obs Observer, offsetMinutes int) int {
	y := fractionalYear(t, 12)
	return int(720-4*obs.LonDeg-equationOfTime(y)) + offsetMinutes
}
