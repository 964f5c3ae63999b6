package entities

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DayTemplate describes the recurring availability for one weekday.
// When IsHoliday is set the Hours are ignored by readers; writers clear them
// but readers must not rely on that.
type DayTemplate struct {
	Hours     []int `json:"hours"`
	IsHoliday bool  `json:"is_holiday"`
}

// WeeklyTemplate is a lawyer's recurring weekly availability, indexed by
// Weekday. Using a fixed array makes "missing weekday" unrepresentable; the
// default-open fallback lives in DefaultWeeklyTemplate instead.
type WeeklyTemplate struct {
	LawyerID string                    `json:"lawyer_id"`
	Days     [WeekdayCount]DayTemplate `json:"days"`
}

// DefaultWorkingHours is the template seeded for a lawyer who has never
// configured availability.
var DefaultWorkingHours = []int{9, 10, 11, 14, 15, 16, 17}

// DefaultWeeklyTemplate returns the template a lawyer starts with: every
// weekday open on the default hours, Friday fully closed.
func DefaultWeeklyTemplate(lawyerID string) *WeeklyTemplate {
	t := &WeeklyTemplate{LawyerID: lawyerID}
	for d := Weekday(0); d < WeekdayCount; d++ {
		if d == Friday {
			t.Days[d] = DayTemplate{IsHoliday: true}
			continue
		}
		hours := make([]int, len(DefaultWorkingHours))
		copy(hours, DefaultWorkingHours)
		t.Days[d] = DayTemplate{Hours: hours}
	}
	return t
}

// Day returns the template entry for the given weekday.
func (t *WeeklyTemplate) Day(d Weekday) DayTemplate {
	return t.Days[d]
}

// TimeSlot is one concrete bookable interval on a specific date.
// Uniqueness is keyed by (Date, StartTime); the ID encodes that key.
type TimeSlot struct {
	ID        string `json:"id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	IsBooked  bool   `json:"is_booked"`
}

// SlotID derives the deterministic slot identifier from its natural key.
func SlotID(date, startTime string) string {
	return date + "-" + startTime
}

// HourStart formats an hour-of-day as a slot start time.
func HourStart(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// NewHourSlot builds an unbooked one-hour slot starting at the given hour.
// An hour of 23 yields an end time of "24:00"; that value is carried as-is.
func NewHourSlot(date string, hour int) TimeSlot {
	start := HourStart(hour)
	return TimeSlot{
		ID:        SlotID(date, start),
		Date:      date,
		StartTime: start,
		EndTime:   HourStart(hour + 1),
		IsBooked:  false,
	}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Selectable working window for hour pickers.
const (
	WorkingHourMin = 8
	WorkingHourMax = 22
)

// WorkingHours lists the selectable hours of the working window, ascending.
func WorkingHours() []int {
	hours := make([]int, 0, WorkingHourMax-WorkingHourMin+1)
	for h := WorkingHourMin; h <= WorkingHourMax; h++ {
		hours = append(hours, h)
	}
	return hours
}
