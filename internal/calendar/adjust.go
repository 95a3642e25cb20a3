package calendar

// wrap normalizes sum into [0, base) and returns the whole units carried
// out of it. The remainder is taken on the magnitude, re-signed, shifted
// by base and reduced again; the carry is the exact floor quotient so
// negative sums borrow from the next field.
func wrap(sum, base int64) (rem, carry int64) {
	rem = absolute(sum) % base
	rem = rem*signum(sum) + base
	rem %= base
	return rem, (sum - rem) / base
}

// Adjust adds offsetMinutes to t and renormalizes every field, carrying or
// borrowing through hours, days, months and the two-digit year. It is the
// only code path that moves a Time across day, month or year boundaries.
func Adjust(t *Time, offsetMinutes int64) {
	minute, hours := wrap(int64(t.Minute)+offsetMinutes, 60)
	t.Minute = uint8(minute)

	hour, days := wrap(int64(t.Hour)+hours, 24)
	t.Hour = uint8(hour)

	day := int64(t.Day) + days
	length := int64(LengthOfMonth(*t))
	for day > length {
		day -= length
		t.Month++
		if t.Month > 12 {
			t.Month = 1
			t.Year = uint8((int(t.Year) + 1) % 100)
		}
		length = int64(LengthOfMonth(*t))
	}
	for day < 1 {
		if t.Month <= 1 {
			t.Month = 12
			t.Year = uint8((int(t.Year) + 99) % 100)
		} else {
			t.Month--
		}
		day += int64(LengthOfMonth(*t))
	}
	t.Day = uint8(day)
}

// AddDays shifts t by whole days.
func AddDays(t *Time, days int) {
	Adjust(t, int64(days)*24*60)
}
