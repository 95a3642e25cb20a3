// Package reference computes full-precision values for the quantities the
// almanac approximates, so the approximation error can be reported and
// bounded.
package reference

import (
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"

	almanac "github.com/litescript/ls-almanac"
	"github.com/litescript/ls-almanac/internal/calendar"
)

// Zone returns the fixed standard-time zone of a.
func Zone(a *almanac.Almanac) *time.Location {
	return time.FixedZone("STD", a.UTCOffset()*60)
}

// SunriseSunset returns the reference sunrise and sunset instants for the
// calendar date of t at a's position. Both are zero when the sun does not
// rise or set.
func SunriseSunset(a *almanac.Almanac, t calendar.Time) (rise, set time.Time) {
	return sunrise.SunriseSunset(a.Latitude(), a.Longitude(),
		t.FullYear(), time.Month(t.Month), int(t.Day))
}

// GMST returns Greenwich mean sidereal time in seconds [0, 86400) for the
// instant utc.
func GMST(utc time.Time) float64 {
	return float64(sidereal.Mean(julian.TimeToJD(utc.UTC())))
}

// Drift is the difference between the almanac approximation and the
// reference value for one instant.
type Drift struct {
	Time            calendar.Time `json:"time"`
	SunriseMinutes  float64       `json:"sunrise_minutes"`
	SunsetMinutes   float64       `json:"sunset_minutes"`
	SiderealSeconds float64       `json:"sidereal_seconds"`
	HasSunrise      bool          `json:"has_sunrise"`
	HasSunset       bool          `json:"has_sunset"`
}

// Compare evaluates a at standard local time t and returns the drift of
// each approximation from its reference.
func Compare(a *almanac.Almanac, t calendar.Time) Drift {
	zone := Zone(a)
	d := Drift{Time: t}

	refRise, refSet := SunriseSunset(a, t)

	rise := t
	if a.SunRise(&rise) && !refRise.IsZero() {
		d.HasSunrise = true
		d.SunriseMinutes = rise.ToTime(zone).Sub(refRise).Minutes()
	}
	set := t
	if a.SunSet(&set) && !refSet.IsZero() {
		d.HasSunset = true
		d.SunsetMinutes = set.ToTime(zone).Sub(refSet).Minutes()
	}

	g := t
	a.Sidereal(&g, false)
	d.SiderealSeconds = wrapSeconds(float64(g.Clock()) - GMST(t.ToTime(zone)))

	return d
}

// wrapSeconds folds a difference of two clock readings into [-43200, 43200).
func wrapSeconds(s float64) float64 {
	s = math.Mod(s+43200, 86400)
	if s < 0 {
		s += 86400
	}
	return s - 43200
}
