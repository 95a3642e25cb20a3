// Package calendar implements the integer calendar arithmetic behind the
// almanac: the six-field time buffer, day numbering, month lengths, day of
// week and minute-offset normalization.
package calendar

import (
	"fmt"
	"time"
)

// BaseYear is the century the two-digit Year field is counted from.
const BaseYear = 2000

// Time is the six-field civil time buffer shared with clock and display
// drivers. Year is the offset from BaseYear.
type Time struct {
	Second uint8
	Minute uint8
	Hour   uint8
	Day    uint8
	Month  uint8
	Year   uint8
}

// Date builds a Time from a four-digit year and clock fields.
// No normalization is applied; pass the result through Adjust(t, 0) if
// the inputs may be out of range.
func Date(year, month, day, hour, minute, second int) Time {
	return Time{
		Second: uint8(second),
		Minute: uint8(minute),
		Hour:   uint8(hour),
		Day:    uint8(day),
		Month:  uint8(month),
		Year:   uint8(year - BaseYear),
	}
}

// FullYear returns the four-digit year.
func (t Time) FullYear() int {
	return BaseYear + int(t.Year)
}

// FromTime converts a wall-clock time.Time, using its fields as they appear
// in its own location.
func FromTime(tm time.Time) Time {
	return Date(tm.Year(), int(tm.Month()), tm.Day(), tm.Hour(), tm.Minute(), tm.Second())
}

// ToTime returns the buffer as a time.Time in loc.
func (t Time) ToTime(loc *time.Location) time.Time {
	return time.Date(t.FullYear(), time.Month(t.Month), int(t.Day),
		int(t.Hour), int(t.Minute), int(t.Second), 0, loc)
}

// Bytes returns the buffer in wire order: second, minute, hour, day, month, year.
func (t Time) Bytes() [6]byte {
	return [6]byte{t.Second, t.Minute, t.Hour, t.Day, t.Month, t.Year}
}

// FromBytes is the inverse of Bytes.
func FromBytes(b [6]byte) Time {
	return Time{Second: b[0], Minute: b[1], Hour: b[2], Day: b[3], Month: b[4], Year: b[5]}
}

// Valid reports whether every field is in its canonical range.
func (t Time) Valid() bool {
	if t.Second > 59 || t.Minute > 59 || t.Hour > 23 {
		return false
	}
	if t.Month < 1 || t.Month > 12 || t.Year > 99 {
		return false
	}
	return t.Day >= 1 && int(t.Day) <= LengthOfMonth(t)
}

// Clock returns the time of day as seconds since midnight.
func (t Time) Clock() int {
	return int(t.Hour)*3600 + int(t.Minute)*60 + int(t.Second)
}

func (t Time) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		t.FullYear(), t.Month, t.Day, t.Hour, t.Minute, t.Second)
}

// DateString formats just the calendar date.
func (t Time) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", t.FullYear(), t.Month, t.Day)
}

// ClockString formats just the time of day.
func (t Time) ClockString() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

var parseLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Parse reads a date in one of the YYYY-MM-DD[ HH:MM[:SS]] layouts.
// Years outside 2000-2099 are rejected.
func Parse(s string) (Time, error) {
	for _, layout := range parseLayouts {
		tm, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if tm.Year() < BaseYear || tm.Year() > BaseYear+99 {
			return Time{}, fmt.Errorf("year %d outside %d-%d", tm.Year(), BaseYear, BaseYear+99)
		}
		return FromTime(tm), nil
	}
	return Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD[ HH:MM[:SS]]", s)
}
