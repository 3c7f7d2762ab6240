// Package calendar implements the simulation's own clock: a simplified
// calendar whose leap years are exactly the years divisible by four.
//
// GameDate is an immutable value; every operation returns a new date.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	monthsPerYear  = 12
	daysPerWeek    = 7
	lastDayOfYear  = 31
	monthsPerQuart = 3
)

var daysPerMonth = [monthsPerYear]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// GameDate is a day on the simulation calendar.
type GameDate struct {
	Year  int
	Month int // 1..12
	Day   int // 1..31
}

// New returns the GameDate for the given components without validation.
func New(year, month, day int) GameDate {
	return GameDate{Year: year, Month: month, Day: day}
}

// String implements fmt.Stringer using Format.
func (d GameDate) String() string { return Format(d) }

// Valid reports whether d names a day that exists on the simulation calendar.
func (d GameDate) Valid() bool {
	if d.Month < 1 || d.Month > monthsPerYear || d.Day < 1 {
		return false
	}
	return d.Day <= DaysInMonth(d.Year, d.Month)
}

// IsLeapYear uses the simplified rule: divisible by 4, no century exception.
func IsLeapYear(year int) bool {
	return year%4 == 0
}

// DaysInMonth returns the length of month in year. Months outside 1..12 are
// reported as 31 days long.
func DaysInMonth(year, month int) int {
	if month < 1 || month > monthsPerYear {
		return 31
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month-1]
}

// AdvanceDay returns the day after d.
func AdvanceDay(d GameDate) GameDate {
	if d.Day < DaysInMonth(d.Year, d.Month) {
		return GameDate{Year: d.Year, Month: d.Month, Day: d.Day + 1}
	}
	if d.Month < monthsPerYear {
		return GameDate{Year: d.Year, Month: d.Month + 1, Day: 1}
	}
	return GameDate{Year: d.Year + 1, Month: 1, Day: 1}
}

// AddDays applies AdvanceDay n times. n <= 0 returns d unchanged.
func AddDays(d GameDate, n int) GameDate {
	for i := 0; i < n; i++ {
		d = AdvanceDay(d)
	}
	return d
}

// AddMonths moves d by n calendar months, clamping the day to the length of
// the target month.
func AddMonths(d GameDate, n int) GameDate {
	total := d.Year*monthsPerYear + (d.Month - 1) + n
	year := total / monthsPerYear
	month := total%monthsPerYear + 1
	if month <= 0 {
		month += monthsPerYear
		year--
	}
	day := d.Day
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return GameDate{Year: year, Month: month, Day: day}
}

// IsLastDayOfMonth reports whether d is the final day of its month.
func IsLastDayOfMonth(d GameDate) bool {
	return d.Day == DaysInMonth(d.Year, d.Month)
}

// IsFirstDayOfMonth reports whether d is day 1.
func IsFirstDayOfMonth(d GameDate) bool {
	return d.Day == 1
}

// IsLastDayOfQuarter reports whether d closes March, June, September or December.
func IsLastDayOfQuarter(d GameDate) bool {
	return d.Month%monthsPerQuart == 0 && IsLastDayOfMonth(d)
}

// IsLastDayOfYear reports whether d is December 31st.
func IsLastDayOfYear(d GameDate) bool {
	return d.Month == monthsPerYear && d.Day == lastDayOfYear
}

// Quarter returns 1..4 for the quarter containing d.
func Quarter(d GameDate) int {
	return (d.Month-1)/monthsPerQuart + 1
}

// DayOfWeek returns 0 (Sunday) through 6 (Saturday) using Zeller's congruence.
func DayOfWeek(d GameDate) int {
	m, y := d.Month, d.Year
	if m < 3 {
		m += monthsPerYear
		y--
	}
	k := y % 100
	j := y / 100
	// Zeller yields 0 = Saturday.
	h := (d.Day + (13*(m+1))/5 + k + k/4 + j/4 + 5*j) % daysPerWeek
	return (h + 6) % daysPerWeek
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d GameDate) bool {
	dow := DayOfWeek(d)
	return dow == 0 || dow == 6
}

// Compare orders dates by (year, month, day): -1 if a<b, 0 if equal, 1 if a>b.
func Compare(a, b GameDate) int {
	switch {
	case a.Year != b.Year:
		return sign(a.Year - b.Year)
	case a.Month != b.Month:
		return sign(a.Month - b.Month)
	default:
		return sign(a.Day - b.Day)
	}
}

// IsBefore reports whether a precedes b.
func IsBefore(a, b GameDate) bool { return Compare(a, b) < 0 }

// IsAfter reports whether a follows b.
func IsAfter(a, b GameDate) bool { return Compare(a, b) > 0 }

// HasDatePassed reports whether current is strictly after target.
func HasDatePassed(current, target GameDate) bool { return IsAfter(current, target) }

// DaysBetween counts AdvanceDay steps from from to to. It returns 0 when the
// dates are equal, when to precedes from, or when either date is invalid.
func DaysBetween(from, to GameDate) int {
	if !from.Valid() || !to.Valid() || !IsBefore(from, to) {
		return 0
	}
	n := 0
	for cur := from; IsBefore(cur, to); cur = AdvanceDay(cur) {
		n++
	}
	return n
}

// MonthsBetween ignores the day of month; negative when to precedes from.
func MonthsBetween(from, to GameDate) int {
	return (to.Year-from.Year)*monthsPerYear + (to.Month - from.Month)
}

// Format renders d as zero-padded YYYY-MM-DD.
func Format(d GameDate) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Parse splits s on '-' and reads three integers. It does not validate
// ranges; missing or non-numeric components become 0, so malformed input
// yields an invalid GameDate rather than an error. Use ParseStrict to reject it.
func Parse(s string) GameDate {
	parts := strings.Split(s, "-")
	field := func(i int) int {
		if i >= len(parts) {
			return 0
		}
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0
		}
		return v
	}
	return GameDate{Year: field(0), Month: field(1), Day: field(2)}
}

// ParseStrict parses YYYY-MM-DD and rejects anything that is not a real day
// on the simulation calendar.
func ParseStrict(s string) (GameDate, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return GameDate{}, fmt.Errorf("%w: %q: want 3 fields, got %d", ErrInvalidDate, s, len(parts))
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return GameDate{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
		}
		vals[i] = v
	}
	d := GameDate{Year: vals[0], Month: vals[1], Day: vals[2]}
	if !d.Valid() {
		return GameDate{}, fmt.Errorf("%w: %q out of range", ErrInvalidDate, s)
	}
	return d, nil
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
