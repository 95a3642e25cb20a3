// Package almanac computes sunrise and sunset, moon phase, sidereal time,
// season, day of week and daylight-saving transitions from a civil time
// buffer and a fixed observer configuration.
//
// Time buffers are owned by the caller. Operations that shift time mutate
// the buffer in place and report failure with a false return, leaving the
// buffer untouched. An Almanac is not safe for concurrent mutation.
package almanac

import (
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/calendar"
	"github.com/litescript/ls-almanac/internal/dst"
)

// Time is the six-field civil time buffer: second, minute, hour, day,
// month, and year counted from 2000.
type Time = calendar.Time

// Rule is a daylight-saving rule expressed as Nth Sundays.
type Rule = dst.Rule

// Season is one of Winter, Spring, Summer or Fall.
type Season = astro.Season

const (
	Winter = astro.Winter
	Spring = astro.Spring
	Summer = astro.Summer
	Fall   = astro.Fall
)

// Defaults applied by New.
const (
	DefaultLatitude  = 27.0
	DefaultLongitude = -82.0
	DefaultUTCOffset = -300

	// maxOffset is the largest accepted UTC offset in minutes.
	maxOffset = 720
)

// Almanac holds the observer configuration every query is evaluated
// against.
type Almanac struct {
	latitude  float64
	longitude float64
	utcOffset int
	rule      dst.Rule
}

// New returns an Almanac at 27°N 82°W, UTC-5, with the USA DST rule.
func New() *Almanac {
	return &Almanac{
		latitude:  DefaultLatitude,
		longitude: DefaultLongitude,
		utcOffset: DefaultUTCOffset,
		rule:      dst.USA,
	}
}

// Date builds a Time from a four-digit year and clock fields.
func Date(year, month, day, hour, minute, second int) Time {
	return calendar.Date(year, month, day, hour, minute, second)
}

// Position sets the observer latitude and longitude in degrees. It returns
// false and keeps the previous position if |lat| > 90 or |lon| > 180.
func (a *Almanac) Position(lat, lon float64) bool {
	if !(astro.Observer{LatDeg: lat, LonDeg: lon}).Valid() {
		return false
	}
	a.latitude = lat
	a.longitude = lon
	return true
}

// TimeZone sets the standard-time UTC offset in minutes. It returns false
// if |offsetMinutes| > 720.
func (a *Almanac) TimeZone(offsetMinutes int) bool {
	if offsetMinutes > maxOffset || offsetMinutes < -maxOffset {
		return false
	}
	a.utcOffset = offsetMinutes
	return true
}

// DstRules sets the daylight-saving rule: DST begins at 02:00 on the
// startWeek-th Sunday of startMonth and ends at 02:00 on the endWeek-th
// Sunday of endMonth, advancing clocks by advanceMinutes. Months must be
// 1-12 and weeks 1-4.
func (a *Almanac) DstRules(startMonth, startWeek, endMonth, endWeek, advanceMinutes uint8) bool {
	r := dst.Rule{
		StartMonth: startMonth,
		StartWeek:  startWeek,
		EndMonth:   endMonth,
		EndWeek:    endWeek,
		Advance:    advanceMinutes,
	}
	if r.Validate() != nil {
		return false
	}
	a.rule = r
	return true
}

// Latitude returns the observer latitude in degrees.
func (a *Almanac) Latitude() float64 { return a.latitude }

// Longitude returns the observer longitude in degrees.
func (a *Almanac) Longitude() float64 { return a.longitude }

// UTCOffset returns the standard-time offset in minutes.
func (a *Almanac) UTCOffset() int { return a.utcOffset }

// Rule returns the configured DST rule.
func (a *Almanac) Rule() Rule { return a.rule }

func (a *Almanac) observer() astro.Observer {
	return astro.Observer{LatDeg: a.latitude, LonDeg: a.longitude}
}

// GMT converts standard local time to UTC in place.
func (a *Almanac) GMT(t *Time) {
	calendar.Adjust(t, int64(-a.utcOffset))
}

// DST advances standard local time by the rule's advance when t falls in
// the DST interval.
func (a *Almanac) DST(t *Time) {
	if a.rule.Contains(*t) {
		calendar.Adjust(t, int64(a.rule.Advance))
	}
}

// InDST reports whether standard local time t falls in the DST interval.
func (a *Almanac) InDST(t Time) bool {
	return a.rule.Contains(t)
}

// DSTTransitions returns the standard-time instants at which DST starts
// and ends in year.
func (a *Almanac) DSTTransitions(year int) (start, end Time) {
	return a.rule.Transitions(year)
}

// SunRise replaces t's time of day with the standard local time of sunrise
// on t's date. It returns false, leaving t unchanged, if the sun does not
// rise that day.
func (a *Almanac) SunRise(t *Time) bool {
	return astro.SunEvent(t, a.observer(), a.utcOffset, true)
}

// SunSet is SunRise for sunset.
func (a *Almanac) SunSet(t *Time) bool {
	return astro.SunEvent(t, a.observer(), a.utcOffset, false)
}

// SolarNoon returns the standard local minute of the day at which the sun
// transits on t's date.
func (a *Almanac) SolarNoon(t Time) int {
	return astro.SolarNoon(t, a.observer(), a.utcOffset)
}

// MoonPhase returns progress through the synodic month in [0, 1), 0 being
// new moon. t is not modified.
func (a *Almanac) MoonPhase(t *Time) float64 {
	return astro.MoonPhase(*t)
}

// Sidereal converts standard local time t to mean sidereal time in place:
// Greenwich when local is false, at the observer longitude when true. The
// date fields are those of the UTC instant.
func (a *Almanac) Sidereal(t *Time, local bool) {
	a.GMT(t)
	astro.Sidereal(t, a.longitude, local)
}

// Season returns the season at t for the observer's hemisphere.
func (a *Almanac) Season(t *Time) Season {
	return astro.SeasonAt(*t, a.latitude)
}

// DayOfWeek returns 1 for Sunday through 7 for Saturday.
func (a *Almanac) DayOfWeek(t *Time) uint8 {
	return uint8(calendar.DayOfWeek(*t))
}

// LengthOfMonth returns the number of days in t's month.
func (a *Almanac) LengthOfMonth(t *Time) uint8 {
	return uint8(calendar.LengthOfMonth(*t))
}

// IsLeapYear applies the Gregorian rule to a four-digit year.
func (a *Almanac) IsLeapYear(year int) bool {
	return calendar.IsLeapYear(year)
}
