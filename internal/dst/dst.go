// Package dst evaluates "Nth Sunday of the month" daylight-saving rules
// against standard local time.
package dst

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-almanac/internal/calendar"
)

// switchHour is the standard-time hour at which the rule flips.
const switchHour = 2

// Rule describes a DST interval that starts at 02:00 on the StartWeek-th
// Sunday of StartMonth and ends at 02:00 on the EndWeek-th Sunday of
// EndMonth. Advance is the number of minutes clocks move forward.
type Rule struct {
	StartMonth uint8 `json:"start_month" yaml:"start_month"`
	StartWeek  uint8 `json:"start_week" yaml:"start_week"`
	EndMonth   uint8 `json:"end_month" yaml:"end_month"`
	EndWeek    uint8 `json:"end_week" yaml:"end_week"`
	Advance    uint8 `json:"advance" yaml:"advance"`
}

// USA is the United States rule in force since 2007: second Sunday of
// March through first Sunday of November, one hour.
var USA = Rule{StartMonth: 3, StartWeek: 2, EndMonth: 11, EndWeek: 1, Advance: 60}

// ErrInvalidRule is wrapped by every Validate failure.
var ErrInvalidRule = errors.New("invalid dst rule")

// Validate checks that months are 1-12 and weeks 1-4. Advance is not
// constrained.
func (r Rule) Validate() error {
	if r.StartMonth == 0 || r.StartWeek == 0 || r.EndMonth == 0 || r.EndWeek == 0 {
		return fmt.Errorf("%w: month and week fields must be non-zero", ErrInvalidRule)
	}
	if r.StartMonth > 12 || r.EndMonth > 12 {
		return fmt.Errorf("%w: month must be at most 12", ErrInvalidRule)
	}
	if r.StartWeek > 4 || r.EndWeek > 4 {
		return fmt.Errorf("%w: week must be at most 4", ErrInvalidRule)
	}
	return nil
}

// sundayOrdinal numbers the Sundays in t's month up to and including t's
// day, zero before the first Sunday. It returns the weekday alongside
// (1=Sunday). The count is prevSunday/7+1, so a Sunday falling on the 7th
// is numbered 2 and no day of that month is numbered 1.
func sundayOrdinal(t calendar.Time) (ordinal, weekday int) {
	weekday = calendar.DayOfWeek(t)
	prevSunday := int(t.Day) - weekday + 1
	if prevSunday > 0 {
		ordinal = prevSunday/7 + 1
	}
	return ordinal, weekday
}

// Contains reports whether standard local time t falls inside the DST
// interval.
func (r Rule) Contains(t calendar.Time) bool {
	if t.Month < r.StartMonth || t.Month > r.EndMonth {
		return false
	}
	if t.Month > r.StartMonth && t.Month < r.EndMonth {
		return true
	}

	ordinal, weekday := sundayOrdinal(t)

	if t.Month == r.StartMonth {
		if ordinal < int(r.StartWeek) {
			return false
		}
		if ordinal > int(r.StartWeek) {
			return true
		}
		return weekday > 1 || t.Hour >= switchHour
	}

	if ordinal < int(r.EndWeek) {
		return true
	}
	if ordinal > int(r.EndWeek) {
		return false
	}
	return !(weekday > 1 || t.Hour >= switchHour)
}

// nthSunday returns the instant in month at which sundayOrdinal first
// reaches week: 02:00 on the Sunday numbered week. When the first Sunday is
// the 7th it is numbered 2, so week 1 is never matched exactly and the
// rule flips at 00:00 that day instead.
func nthSunday(year, month, week int) calendar.Time {
	t := calendar.Date(year, month, 1, switchHour, 0, 0)
	first := 1 + (8-calendar.DayOfWeek(t))%7

	day := first + 7*(week-1)
	if first == 7 {
		day = 7 * (week - 1)
		if week == 1 {
			day = 7
			t.Hour = 0
		}
	}
	t.Day = uint8(day)
	return t
}

// Transitions returns the standard-time instants in year at which the rule
// switches on and off.
func (r Rule) Transitions(year int) (start, end calendar.Time) {
	return nthSunday(year, int(r.StartMonth), int(r.StartWeek)),
		nthSunday(year, int(r.EndMonth), int(r.EndWeek))
}

func (r Rule) String() string {
	return fmt.Sprintf("week %d of month %d to week %d of month %d, +%dm",
		r.StartWeek, r.StartMonth, r.EndWeek, r.EndMonth, r.Advance)
}
