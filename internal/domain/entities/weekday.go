package entities

import (
	"fmt"
	"time"
)

// Weekday identifies a day of the week. The week starts on Saturday to match
// the regional calendar used across the marketplace.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday

	// WeekdayCount is the number of days in a week.
	WeekdayCount = 7
)

var weekdayNames = [WeekdayCount]string{
	"saturday",
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
}

// String returns the lowercase English name of the weekday.
func (d Weekday) String() string {
	if d < 0 || d >= WeekdayCount {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// MarshalText implements encoding.TextMarshaler so templates serialize with
// weekday names rather than bare indexes.
func (d Weekday) MarshalText() ([]byte, error) {
	if d < 0 || d >= WeekdayCount {
		return nil, fmt.Errorf("invalid weekday: %d", int(d))
	}
	return []byte(weekdayNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseWeekday maps a lowercase English weekday name to a Weekday.
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", name)
}

// WeekdayOf maps a calendar date to its Weekday.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Saturday:
		return Saturday
	case time.Sunday:
		return Sunday
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	default:
		return Friday
	}
}
