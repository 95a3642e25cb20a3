package astro

import "github.com/litescript/ls-almanac/internal/calendar"

const (
	secondsPerDay = 86400

	// Sidereal seconds per calendar second, as a ratio of integers so the
	// product stays exact in 64 bits through 2099.
	siderealNum = 1002737909
	siderealDen = 1000000000

	// epochGMST is Greenwich mean sidereal time at 2000-01-01 00:00 UT, in
	// seconds.
	epochGMST = 23992

	// secondsPerDegree converts longitude into sidereal seconds.
	secondsPerDegree = 240
)

// SiderealSeconds returns mean sidereal time in seconds [0, 86400) for a
// UTC buffer. When local is set the observer longitude is added, giving
// local mean sidereal time.
func SiderealSeconds(utc calendar.Time, lonDeg float64, local bool) int64 {
	days := calendar.DayNumber(utc.FullYear(), int(utc.Month), int(utc.Day)) -
		calendar.DayNumber(calendar.BaseYear, 1, 1)

	sec := days*secondsPerDay + int64(utc.Clock())
	sec = sec * siderealNum / siderealDen
	sec += epochGMST

	if local {
		sec += int64(secondsPerDegree * lonDeg)
	}

	sec %= secondsPerDay
	if sec < 0 {
		sec += secondsPerDay
	}
	return sec
}

// Sidereal rewrites a UTC buffer's time of day as sidereal time. The date
// fields are left as they were.
func Sidereal(t *calendar.Time, lonDeg float64, local bool) {
	sec := SiderealSeconds(*t, lonDeg, local)
	minute := sec / 60

	t.Second = uint8(sec - minute*60)
	t.Hour = 0
	t.Minute = 0
	calendar.Adjust(t, minute)
}
