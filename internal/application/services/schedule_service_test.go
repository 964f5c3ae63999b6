package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vakilyar/marketplace-backend/internal/adapters/kv"
	"github.com/vakilyar/marketplace-backend/internal/adapters/store"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// 2024-03-02 is a Saturday, so 2024-03-02..2024-03-08 covers one full week
// ending on a Friday.
const (
	testSaturday = "2024-03-02"
	testSunday   = "2024-03-03"
	testFriday   = "2024-03-08"
)

func newTestScheduleService() *ScheduleService {
	kvStore := kv.NewMemoryAdapter()
	return NewScheduleService(store.NewTemplateAdapter(kvStore), store.NewSlotAdapter(kvStore))
}

func TestSaveTemplateNormalizesHours(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	template := entities.DefaultWeeklyTemplate("lawyer-1")
	template.Days[entities.Monday] = entities.DayTemplate{Hours: []int{14, 9, 9, 10, 25, -1}}
	require.NoError(t, svc.SaveTemplate(ctx, template))

	loaded, err := svc.GetTemplate(ctx, "lawyer-1")
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10, 14}, loaded.Day(entities.Monday).Hours)
}

func TestSaveTemplateClearsHolidayHours(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	template := entities.DefaultWeeklyTemplate("lawyer-1")
	template.Days[entities.Monday] = entities.DayTemplate{Hours: []int{9, 10}, IsHoliday: true}
	require.NoError(t, svc.SaveTemplate(ctx, template))

	loaded, err := svc.GetTemplate(ctx, "lawyer-1")
	require.NoError(t, err)
	assert.True(t, loaded.Day(entities.Monday).IsHoliday)
	assert.Empty(t, loaded.Day(entities.Monday).Hours)
}

func TestExpandDay(t *testing.T) {
	slots := ExpandDay(testSaturday, []int{9, 10, 14})

	require.Len(t, slots, 3)
	assert.Equal(t, "2024-03-02-09:00", slots[0].ID)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:00", slots[0].EndTime)
	assert.Equal(t, "2024-03-02-10:00", slots[1].ID)
	assert.Equal(t, "2024-03-02-14:00", slots[2].ID)
	for _, slot := range slots {
		assert.False(t, slot.IsBooked)
		assert.Equal(t, testSaturday, slot.Date)
	}
}

func TestApplyTemplateToRangeSkipsHolidayWeekdays(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	// Default template: every day open except Friday
	require.NoError(t, svc.ApplyTemplateToRange(ctx, "lawyer-1", testSaturday, testFriday))

	slots, err := svc.ListSlots(ctx, "lawyer-1", "", "")
	require.NoError(t, err)

	// 6 working days, default hours each
	assert.Len(t, slots, 6*len(entities.DefaultWorkingHours))
	for _, slot := range slots {
		assert.NotEqual(t, testFriday, slot.Date, "friday should have no slots")
		assert.False(t, slot.IsBooked)
	}
}

func TestApplyTemplateToRangeIsDestructiveInRange(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	require.NoError(t, svc.ApplyTemplateToRange(ctx, "lawyer-1", testSaturday, testFriday))

	// Book a slot inside the range and add a slot outside it
	bookedID := entities.SlotID(testSunday, "09:00")
	require.NoError(t, svc.MarkSlotBooked(ctx, "lawyer-1", bookedID))
	outside, err := svc.AddCustomSlot(ctx, "lawyer-1", "2024-03-20", "11:30", "12:15")
	require.NoError(t, err)

	// Re-application discards everything in range, booked or not
	require.NoError(t, svc.ApplyTemplateToRange(ctx, "lawyer-1", testSaturday, testFriday))

	slot, err := svc.GetSlot(ctx, "lawyer-1", bookedID)
	require.NoError(t, err)
	assert.False(t, slot.IsBooked, "re-applied slot should be a fresh unbooked slot")

	// The slot outside the range survives untouched
	kept, err := svc.GetSlot(ctx, "lawyer-1", outside.ID)
	require.NoError(t, err)
	assert.Equal(t, "11:30", kept.StartTime)
}

func TestApplyTemplateToRangeEmptyRangeIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	require.NoError(t, svc.ApplyTemplateToRange(ctx, "lawyer-1", testSaturday, testFriday))
	before, err := svc.ListSlots(ctx, "lawyer-1", "", "")
	require.NoError(t, err)

	// Start after end: nothing changes
	require.NoError(t, svc.ApplyTemplateToRange(ctx, "lawyer-1", testFriday, testSaturday))
	after, err := svc.ListSlots(ctx, "lawyer-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApplyTemplateToRangeRejectsBadDates(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	err := svc.ApplyTemplateToRange(ctx, "lawyer-1", "03/02/2024", testFriday)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestApplyTemplateToRangeEnforcesHorizon(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()
	svc.SetHorizon(30)

	start := time.Now().AddDate(0, 0, 40).Format(entities.DateLayout)
	end := time.Now().AddDate(0, 0, 45).Format(entities.DateLayout)
	err := svc.ApplyTemplateToRange(ctx, "lawyer-1", start, end)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	start = time.Now().Format(entities.DateLayout)
	end = time.Now().AddDate(0, 0, 7).Format(entities.DateLayout)
	require.NoError(t, svc.ApplyTemplateToRange(ctx, "lawyer-1", start, end))

	slots, err := svc.ListSlots(ctx, "lawyer-1", "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
}

func TestListSlotsDateFilter(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	require.NoError(t, svc.ApplyTemplateToRange(ctx, "lawyer-1", testSaturday, testFriday))

	slots, err := svc.ListSlots(ctx, "lawyer-1", testSunday, testSunday)
	require.NoError(t, err)
	require.Len(t, slots, len(entities.DefaultWorkingHours))
	for _, slot := range slots {
		assert.Equal(t, testSunday, slot.Date)
	}
}

func TestToggleHourTwiceRestoresOriginalSet(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	require.NoError(t, svc.ApplyTemplateToRange(ctx, "lawyer-1", testSaturday, testSaturday))
	before, err := svc.ListSlots(ctx, "lawyer-1", "", "")
	require.NoError(t, err)

	// First toggle removes the 09:00 slot
	require.NoError(t, svc.ToggleHour(ctx, "lawyer-1", testSaturday, 9))
	middle, err := svc.ListSlots(ctx, "lawyer-1", "", "")
	require.NoError(t, err)
	assert.Len(t, middle, len(before)-1)

	// Second toggle re-adds it
	require.NoError(t, svc.ToggleHour(ctx, "lawyer-1", testSaturday, 9))
	after, err := svc.ListSlots(ctx, "lawyer-1", "", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)
}

func TestToggleHourValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	err := svc.ToggleHour(ctx, "lawyer-1", testSaturday, 24)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestAddCustomSlot(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	slot, err := svc.AddCustomSlot(ctx, "lawyer-1", testSaturday, "11:30", "12:15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02-11:30", slot.ID)
	assert.False(t, slot.IsBooked)

	// Same (date, start time) is a conflict
	_, err = svc.AddCustomSlot(ctx, "lawyer-1", testSaturday, "11:30", "13:00")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	// Same start on another date is fine
	_, err = svc.AddCustomSlot(ctx, "lawyer-1", testSunday, "11:30", "12:15")
	assert.NoError(t, err)
}

func TestDeleteSlot(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	slot, err := svc.AddCustomSlot(ctx, "lawyer-1", testSaturday, "11:30", "12:15")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSlot(ctx, "lawyer-1", slot.ID))

	err = svc.DeleteSlot(ctx, "lawyer-1", slot.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestDeleteSlotAllowsBookedSlots(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	slot, err := svc.AddCustomSlot(ctx, "lawyer-1", testSaturday, "11:30", "12:15")
	require.NoError(t, err)
	require.NoError(t, svc.MarkSlotBooked(ctx, "lawyer-1", slot.ID))

	assert.NoError(t, svc.DeleteSlot(ctx, "lawyer-1", slot.ID))
}

func TestIsHolidayPrecedence(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	// Friday is a template holiday by default
	holiday, err := svc.IsHoliday(ctx, "lawyer-1", testFriday)
	require.NoError(t, err)
	assert.True(t, holiday)

	// An unbooked slot on the date overrides the template
	slot, err := svc.AddCustomSlot(ctx, "lawyer-1", testFriday, "10:00", "11:00")
	require.NoError(t, err)
	holiday, err = svc.IsHoliday(ctx, "lawyer-1", testFriday)
	require.NoError(t, err)
	assert.False(t, holiday)

	// Booking the only slot removes the override, the template wins again
	require.NoError(t, svc.MarkSlotBooked(ctx, "lawyer-1", slot.ID))
	holiday, err = svc.IsHoliday(ctx, "lawyer-1", testFriday)
	require.NoError(t, err)
	assert.True(t, holiday)
}

func TestToggleDateHolidayStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	// Friday starts as a holiday; toggling makes it a working day by
	// expanding slots for just that date. Friday template hours are empty,
	// so the default working hours are used.
	require.NoError(t, svc.ToggleDateHolidayStatus(ctx, "lawyer-1", testFriday))

	slots, err := svc.ListSlots(ctx, "lawyer-1", testFriday, testFriday)
	require.NoError(t, err)
	assert.Len(t, slots, len(entities.DefaultWorkingHours))

	// Toggling back removes every slot on that date
	require.NoError(t, svc.ToggleDateHolidayStatus(ctx, "lawyer-1", testFriday))
	slots, err = svc.ListSlots(ctx, "lawyer-1", testFriday, testFriday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	holiday, err := svc.IsHoliday(ctx, "lawyer-1", testFriday)
	require.NoError(t, err)
	assert.True(t, holiday)
}

func TestToggleDateHolidayStatusMergesWithExistingSlots(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	// A booked slot on a template-holiday date does not override the
	// holiday, so toggling expands the day and must merge, not duplicate.
	slot, err := svc.AddCustomSlot(ctx, "lawyer-1", testFriday, "09:00", "10:00")
	require.NoError(t, err)
	require.NoError(t, svc.MarkSlotBooked(ctx, "lawyer-1", slot.ID))

	require.NoError(t, svc.ToggleDateHolidayStatus(ctx, "lawyer-1", testFriday))

	slots, err := svc.ListSlots(ctx, "lawyer-1", testFriday, testFriday)
	require.NoError(t, err)
	assert.Len(t, slots, len(entities.DefaultWorkingHours))

	// The pre-existing booked 09:00 slot survived the merge
	kept, err := svc.GetSlot(ctx, "lawyer-1", slot.ID)
	require.NoError(t, err)
	assert.True(t, kept.IsBooked)
}

func TestMarkSlotBooked(t *testing.T) {
	ctx := context.Background()
	svc := newTestScheduleService()

	slot, err := svc.AddCustomSlot(ctx, "lawyer-1", testSaturday, "09:00", "10:00")
	require.NoError(t, err)

	require.NoError(t, svc.MarkSlotBooked(ctx, "lawyer-1", slot.ID))

	// Double booking the same slot is a conflict
	err = svc.MarkSlotBooked(ctx, "lawyer-1", slot.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	err = svc.MarkSlotBooked(ctx, "lawyer-1", "missing-slot")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
