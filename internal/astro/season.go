package astro

import "github.com/litescript/ls-almanac/internal/calendar"

// Season is a quarter of the tropical year.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Fall
)

func (s Season) String() string {
	switch s {
	case Winter:
		return "winter"
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Fall:
		return "fall"
	default:
		return "unknown"
	}
}

// northernSeason uses fixed equinox and solstice dates: Mar 22, Jun 21,
// Sep 22 and Dec 21.
func northernSeason(t calendar.Time) Season {
	switch {
	case t.Month < 3:
		return Winter
	case t.Month == 3:
		if t.Day < 22 {
			return Winter
		}
		return Spring
	case t.Month < 6:
		return Spring
	case t.Month == 6:
		if t.Day < 21 {
			return Spring
		}
		return Summer
	case t.Month < 9:
		return Summer
	case t.Month == 9:
		if t.Day < 22 {
			return Summer
		}
		return Fall
	case t.Month < 12:
		return Fall
	case t.Day < 21:
		return Fall
	default:
		return Winter
	}
}

// SeasonAt returns the season at t for an observer at latDeg. Southern
// latitudes are two seasons out of step with the north.
func SeasonAt(t calendar.Time, latDeg float64) Season {
	s := northernSeason(t)
	if latDeg < 0 {
		s = (s + 2) % 4
	}
	return s
}
