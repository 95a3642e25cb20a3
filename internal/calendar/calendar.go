package calendar

// signum returns -1 for negative n and +1 otherwise, including zero.
func signum(n int64) int64 {
	if n < 0 {
		return -1
	}
	return 1
}

func absolute(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// DayNumber maps a Gregorian date to a linear day count. The year is
// rotated to start in March so February's variable length falls last and
// leap days need no special casing. All division truncates.
func DayNumber(year, month, day int) int64 {
	m := int64((month + 9) % 12)
	y := int64(year) - m/10
	return 365*y + y/4 - y/100 + y/400 + (m*306+5)/10 + int64(day) - 1
}

// IsLeapYear applies the Gregorian rule to a four-digit year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// LengthOfMonth returns the number of days in t's month.
func LengthOfMonth(t Time) int {
	if t.Month == 2 {
		if IsLeapYear(t.FullYear()) {
			return 29
		}
		return 28
	}
	odd := t.Month&1 == 1
	if t.Month > 7 {
		odd = !odd
	}
	if odd {
		return 31
	}
	return 30
}

// DayOfWeek returns 1 for Sunday through 7 for Saturday.
func DayOfWeek(t Time) int {
	year := t.FullYear()
	month := int(t.Month)
	day := int(t.Day)

	// January and February count as months 13 and 14 of the prior year.
	if month < 3 {
		month += 12
		year--
	}
	wd := ((13*month+3)/5 + day + year + year/4 - year/100 + year/400) % 7
	wd = (wd + 1) % 7
	return wd + 1
}

// DayOfYear returns the 1-based ordinal date.
func DayOfYear(t Time) int {
	return int(DayNumber(t.FullYear(), int(t.Month), int(t.Day)) - DayNumber(t.FullYear(), 1, 1) + 1)
}
