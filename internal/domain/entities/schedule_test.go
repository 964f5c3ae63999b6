package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOf(t *testing.T) {
	// 2024-03-02 is a Saturday
	sat, err := ParseDate("2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, Saturday, WeekdayOf(sat))

	// 2024-03-08 is a Friday
	fri, err := ParseDate("2024-03-08")
	require.NoError(t, err)
	assert.Equal(t, Friday, WeekdayOf(fri))

	assert.Equal(t, Sunday, WeekdayOf(sat.AddDate(0, 0, 1)))
	assert.Equal(t, Thursday, WeekdayOf(sat.AddDate(0, 0, 5)))
}

func TestWeekdayTextRoundTrip(t *testing.T) {
	for d := Weekday(0); d < WeekdayCount; d++ {
		text, err := d.MarshalText()
		require.NoError(t, err)

		var parsed Weekday
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, d, parsed)
	}

	_, err := ParseWeekday("caturday")
	assert.Error(t, err)
}

func TestSlotID(t *testing.T) {
	assert.Equal(t, "2024-03-02-09:00", SlotID("2024-03-02", "09:00"))
	assert.Equal(t, "2024-03-02-09:30", SlotID("2024-03-02", "09:30"))
}

func TestNewHourSlot(t *testing.T) {
	slot := NewHourSlot("2024-03-02", 9)
	assert.Equal(t, "2024-03-02-09:00", slot.ID)
	assert.Equal(t, "09:00", slot.StartTime)
	assert.Equal(t, "10:00", slot.EndTime)
	assert.False(t, slot.IsBooked)
}

func TestNewHourSlotLastHourOfDay(t *testing.T) {
	// Hour 23 ends at "24:00", carried as-is rather than rolling over
	slot := NewHourSlot("2024-03-02", 23)
	assert.Equal(t, "23:00", slot.StartTime)
	assert.Equal(t, "24:00", slot.EndTime)
}

func TestDefaultWeeklyTemplate(t *testing.T) {
	template := DefaultWeeklyTemplate("lawyer-1")
	assert.Equal(t, "lawyer-1", template.LawyerID)

	for d := Weekday(0); d < WeekdayCount; d++ {
		day := template.Day(d)
		if d == Friday {
			assert.True(t, day.IsHoliday, "friday should be a holiday")
			assert.Empty(t, day.Hours)
			continue
		}
		assert.False(t, day.IsHoliday, "%s should not be a holiday", d)
		assert.Equal(t, DefaultWorkingHours, day.Hours)
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, time.March, parsed.Month())

	_, err = ParseDate("02/03/2024")
	assert.Error(t, err)
}

func TestWorkingHours(t *testing.T) {
	hours := WorkingHours()
	require.NotEmpty(t, hours)
	assert.Equal(t, WorkingHourMin, hours[0])
	assert.Equal(t, WorkingHourMax, hours[len(hours)-1])
}
