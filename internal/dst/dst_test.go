package dst

import (
	"errors"
	"testing"

	"github.com/litescript/ls-almanac/internal/calendar"
)

func TestRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{"usa", USA, false},
		{"eu-like", Rule{StartMonth: 3, StartWeek: 4, EndMonth: 10, EndWeek: 4, Advance: 60}, false},
		{"zero advance allowed", Rule{StartMonth: 4, StartWeek: 1, EndMonth: 9, EndWeek: 1}, false},
		{"zero start month", Rule{StartMonth: 0, StartWeek: 2, EndMonth: 11, EndWeek: 1}, true},
		{"zero end week", Rule{StartMonth: 3, StartWeek: 2, EndMonth: 11, EndWeek: 0}, true},
		{"month 13", Rule{StartMonth: 3, StartWeek: 2, EndMonth: 13, EndWeek: 1}, true},
		{"week 5", Rule{StartMonth: 3, StartWeek: 5, EndMonth: 11, EndWeek: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRule) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidRule", err)
			}
		})
	}
}

func TestRule_Contains(t *testing.T) {
	tests := []struct {
		name string
		time calendar.Time
		want bool
	}{
		{"january", calendar.Date(2023, 1, 15, 12, 0, 0), false},
		{"december", calendar.Date(2023, 12, 15, 12, 0, 0), false},
		{"july", calendar.Date(2023, 7, 4, 12, 0, 0), true},
		{"march before first sunday", calendar.Date(2023, 3, 1, 12, 0, 0), false},
		{"first sunday of march", calendar.Date(2023, 3, 5, 12, 0, 0), false},
		{"saturday before switch", calendar.Date(2023, 3, 11, 23, 59, 0), false},
		{"switch day 01:59", calendar.Date(2023, 3, 12, 1, 59, 0), false},
		{"switch day 02:00", calendar.Date(2023, 3, 12, 2, 0, 0), true},
		{"monday after switch", calendar.Date(2023, 3, 13, 0, 0, 0), true},
		{"late march", calendar.Date(2023, 3, 31, 0, 0, 0), true},
		{"november before end", calendar.Date(2023, 11, 4, 23, 0, 0), true},
		{"end day 01:00", calendar.Date(2023, 11, 5, 1, 0, 0), true},
		{"end day 02:00", calendar.Date(2023, 11, 5, 2, 0, 0), false},
		{"after end", calendar.Date(2023, 11, 6, 0, 0, 0), false},
		{"sunday on the 7th counts as the second, before 02:00", calendar.Date(2021, 3, 7, 1, 59, 0), false},
		{"sunday on the 7th counts as the second, noon", calendar.Date(2021, 3, 7, 12, 0, 0), true},
		{"saturday before a sunday on the 7th", calendar.Date(2021, 3, 6, 23, 59, 0), false},
		{"march 2027 starts on the 7th", calendar.Date(2027, 3, 7, 12, 0, 0), true},
		{"november with no first sunday, day 6", calendar.Date(2021, 11, 6, 23, 59, 0), true},
		{"november with no first sunday, day 7 00:00", calendar.Date(2021, 11, 7, 0, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := USA.Contains(tt.time); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestRule_Transitions(t *testing.T) {
	tests := []struct {
		year      int
		wantStart string
		wantEnd   string
	}{
		{2023, "2023-03-12 02:00:00", "2023-11-05 02:00:00"},
		{2021, "2021-03-07 02:00:00", "2021-11-07 00:00:00"},
		{2027, "2027-03-07 02:00:00", "2027-11-07 00:00:00"},
		{2024, "2024-03-10 02:00:00", "2024-11-03 02:00:00"},
	}

	for _, tt := range tests {
		start, end := USA.Transitions(tt.year)
		if start.String() != tt.wantStart {
			t.Errorf("Transitions(%d) start = %s, want %s", tt.year, start, tt.wantStart)
		}
		if end.String() != tt.wantEnd {
			t.Errorf("Transitions(%d) end = %s, want %s", tt.year, end, tt.wantEnd)
		}
	}
}

func TestRule_TransitionsAgreeWithContains(t *testing.T) {
	rules := []Rule{
		USA,
		{StartMonth: 3, StartWeek: 4, EndMonth: 10, EndWeek: 4, Advance: 60},
		{StartMonth: 4, StartWeek: 1, EndMonth: 10, EndWeek: 3, Advance: 30},
		{StartMonth: 3, StartWeek: 1, EndMonth: 11, EndWeek: 2, Advance: 60},
	}

	for _, r := range rules {
		for year := 2000; year < 2100; year++ {
			start, end := r.Transitions(year)

			before := start
			calendar.Adjust(&before, -1)
			if r.Contains(before) || !r.Contains(start) {
				t.Fatalf("%s: start %s not a boundary", r, start)
			}

			before = end
			calendar.Adjust(&before, -1)
			if !r.Contains(before) || r.Contains(end) {
				t.Fatalf("%s: end %s not a boundary", r, end)
			}
		}
	}
}

func TestSundayOrdinal(t *testing.T) {
	tests := []struct {
		day         int
		wantOrdinal int
	}{
		{1, 0}, {6, 0}, {7, 2}, {13, 2}, {14, 3}, {21, 4}, {28, 5}, {31, 5},
	}

	// March 2021 begins on a Monday; its Sundays are the 7th, 14th, 21st and 28th.
	for _, tt := range tests {
		got, _ := sundayOrdinal(calendar.Date(2021, 3, tt.day, 12, 0, 0))
		if got != tt.wantOrdinal {
			t.Errorf("sundayOrdinal(2021-03-%02d) = %d, want %d", tt.day, got, tt.wantOrdinal)
		}
	}
}
