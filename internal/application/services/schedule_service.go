package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/observability"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// ScheduleService owns a lawyer's availability: the recurring weekly
// template, its expansion into concrete dated slots, point mutations on the
// slot set, and holiday resolution.
//
// Every slot mutation is a full read-modify-write of the lawyer's slot list.
// The service serializes mutations per lawyer, so two overlapping calls from
// the same process cannot interleave; two separate processes editing the same
// lawyer still overwrite each other, which is a documented limit of the
// whole-value store model.
type ScheduleService struct {
	templates   repositories.TemplateRepository
	slots       repositories.SlotRepository
	eventBus    providers.EventBus
	metrics     *observability.Metrics
	horizonDays int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewScheduleService creates a new schedule service
func NewScheduleService(templates repositories.TemplateRepository, slots repositories.SlotRepository) *ScheduleService {
	return &ScheduleService{
		templates: templates,
		slots:     slots,
		locks:     make(map[string]*sync.Mutex),
	}
}

// SetEventBus wires an event bus for schedule change notifications
func (s *ScheduleService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SetMetrics wires application metrics
func (s *ScheduleService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// SetHorizon caps how far ahead of today a template may be applied, in days.
// Zero or negative disables the cap.
func (s *ScheduleService) SetHorizon(days int) {
	s.horizonDays = days
}

// lawyerLock returns the mutex serializing slot mutations for one lawyer.
func (s *ScheduleService) lawyerLock(lawyerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[lawyerID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[lawyerID] = lock
	}
	return lock
}

// GetTemplate returns a lawyer's weekly template, seeding the default on
// first access.
func (s *ScheduleService) GetTemplate(ctx context.Context, lawyerID string) (*entities.WeeklyTemplate, error) {
	return s.templates.Get(ctx, lawyerID)
}

// SaveTemplate normalizes and overwrites a lawyer's weekly template. Hours
// are deduplicated and sorted ascending; a holiday weekday has its hours
// cleared on write, though readers never rely on that.
func (s *ScheduleService) SaveTemplate(ctx context.Context, template *entities.WeeklyTemplate) error {
	if template == nil || template.LawyerID == "" {
		return apperrors.NewValidationError("template with lawyer ID is required")
	}

	for d := entities.Weekday(0); d < entities.WeekdayCount; d++ {
		day := template.Days[d]
		if day.IsHoliday {
			template.Days[d] = entities.DayTemplate{IsHoliday: true}
			continue
		}
		template.Days[d] = entities.DayTemplate{Hours: normalizeHours(day.Hours)}
	}

	if err := s.templates.Save(ctx, template); err != nil {
		return err
	}
	s.publish(ctx, template.LawyerID, entities.ScheduleEventTypeTemplateSaved, nil)
	return nil
}

func normalizeHours(hours []int) []int {
	seen := make(map[int]struct{}, len(hours))
	out := make([]int, 0, len(hours))
	for _, h := range hours {
		if h < 0 || h > 23 {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}

// ExpandDay expands one calendar date and its open hours into concrete
// unbooked slots, ascending by hour. An hour of 23 yields an end time of
// "24:00"; that value is stored as-is rather than rolling into the next day.
func ExpandDay(date string, hours []int) []entities.TimeSlot {
	slots := make([]entities.TimeSlot, 0, len(hours))
	for _, h := range hours {
		slots = append(slots, entities.NewHourSlot(date, h))
	}
	return slots
}

// ApplyTemplateToRange materializes the weekly template over the inclusive
// date range [startDate, endDate].
//
// The operation is destructive inside the range: every existing slot dated
// within it, booked or manually added, is discarded and replaced by fresh
// template expansion. Slots dated outside the range survive unchanged. A
// start after the end is an empty range and a no-op. When a scheduling
// horizon is set, ranges ending beyond it are rejected.
func (s *ScheduleService) ApplyTemplateToRange(ctx context.Context, lawyerID, startDate, endDate string) error {
	if lawyerID == "" {
		return apperrors.NewValidationError("lawyer ID is required")
	}
	start, err := entities.ParseDate(startDate)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	end, err := entities.ParseDate(endDate)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if start.After(end) {
		return nil
	}
	if s.horizonDays > 0 {
		horizon := time.Now().AddDate(0, 0, s.horizonDays)
		if end.After(horizon) {
			return apperrors.NewValidationError(fmt.Sprintf("end date exceeds the %d-day scheduling horizon", s.horizonDays))
		}
	}

	template, err := s.templates.Get(ctx, lawyerID)
	if err != nil {
		return err
	}

	err = s.mutateSlots(ctx, lawyerID, "apply_template_range", func(slots []entities.TimeSlot) ([]entities.TimeSlot, error) {
		next := make([]entities.TimeSlot, 0, len(slots))
		for _, slot := range slots {
			if slot.Date < startDate || slot.Date > endDate {
				next = append(next, slot)
			}
		}

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			day := template.Day(entities.WeekdayOf(d))
			if day.IsHoliday {
				continue
			}
			next = append(next, ExpandDay(d.Format(entities.DateLayout), day.Hours)...)
		}
		return next, nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, lawyerID, entities.ScheduleEventTypeRangeApplied, map[string]interface{}{
		"start_date": startDate,
		"end_date":   endDate,
	})
	return nil
}

// ListSlots returns a lawyer's slots, optionally bounded to an inclusive
// date range when both from and to are set.
func (s *ScheduleService) ListSlots(ctx context.Context, lawyerID, from, to string) ([]entities.TimeSlot, error) {
	slots, err := s.slots.List(ctx, lawyerID)
	if err != nil {
		return nil, err
	}
	if from == "" || to == "" {
		return slots, nil
	}
	if _, err := entities.ParseDate(from); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if _, err := entities.ParseDate(to); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	filtered := make([]entities.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Date >= from && slot.Date <= to {
			filtered = append(filtered, slot)
		}
	}
	return filtered, nil
}

// ToggleHour flips a single hour slot on a date: a slot existing at
// (date, hour) is removed, a missing one is inserted unbooked. Calling it
// twice restores the original set.
func (s *ScheduleService) ToggleHour(ctx context.Context, lawyerID, date string, hour int) error {
	if lawyerID == "" {
		return apperrors.NewValidationError("lawyer ID is required")
	}
	if _, err := entities.ParseDate(date); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if hour < 0 || hour > 23 {
		return apperrors.NewValidationError(fmt.Sprintf("hour out of range: %d", hour))
	}

	id := entities.SlotID(date, entities.HourStart(hour))
	err := s.mutateSlots(ctx, lawyerID, "toggle_hour", func(slots []entities.TimeSlot) ([]entities.TimeSlot, error) {
		for i, slot := range slots {
			if slot.ID == id {
				return append(slots[:i], slots[i+1:]...), nil
			}
		}
		return append(slots, entities.NewHourSlot(date, hour)), nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, lawyerID, entities.ScheduleEventTypeSlotsMutated, map[string]interface{}{"slot_id": id})
	return nil
}

// AddCustomSlot inserts a slot with an arbitrary start and end time, not
// constrained to the hour grid. A slot already existing at (date, startTime)
// is a conflict and nothing is written.
func (s *ScheduleService) AddCustomSlot(ctx context.Context, lawyerID, date, startTime, endTime string) (*entities.TimeSlot, error) {
	if lawyerID == "" {
		return nil, apperrors.NewValidationError("lawyer ID is required")
	}
	if _, err := entities.ParseDate(date); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if startTime == "" || endTime == "" {
		return nil, apperrors.NewValidationError("start and end time are required")
	}

	slot := entities.TimeSlot{
		ID:        entities.SlotID(date, startTime),
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		IsBooked:  false,
	}

	err := s.mutateSlots(ctx, lawyerID, "add_custom_slot", func(slots []entities.TimeSlot) ([]entities.TimeSlot, error) {
		for _, existing := range slots {
			if existing.Date == date && existing.StartTime == startTime {
				return nil, apperrors.NewDuplicateSlotError(date, startTime)
			}
		}
		return append(slots, slot), nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, lawyerID, entities.ScheduleEventTypeSlotsMutated, map[string]interface{}{"slot_id": slot.ID})
	return &slot, nil
}

// DeleteSlot removes a slot by ID unconditionally. Deleting a booked slot is
// permitted and the caller's responsibility.
func (s *ScheduleService) DeleteSlot(ctx context.Context, lawyerID, slotID string) error {
	if lawyerID == "" {
		return apperrors.NewValidationError("lawyer ID is required")
	}
	if slotID == "" {
		return apperrors.NewValidationError("slot ID is required")
	}

	err := s.mutateSlots(ctx, lawyerID, "delete_slot", func(slots []entities.TimeSlot) ([]entities.TimeSlot, error) {
		for i, slot := range slots {
			if slot.ID == slotID {
				return append(slots[:i], slots[i+1:]...), nil
			}
		}
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("slot %s not found", slotID))
	})
	if err != nil {
		return err
	}

	s.publish(ctx, lawyerID, entities.ScheduleEventTypeSlotsMutated, map[string]interface{}{"slot_id": slotID})
	return nil
}

// ToggleDateHolidayStatus flips a single date between holiday and working.
// A date resolving as holiday becomes working by expanding that weekday's
// template hours into concrete slots for just that date, merged into the
// existing set. A working date becomes a holiday by deleting every slot on
// that exact date.
func (s *ScheduleService) ToggleDateHolidayStatus(ctx context.Context, lawyerID, date string) error {
	if lawyerID == "" {
		return apperrors.NewValidationError("lawyer ID is required")
	}
	day, err := entities.ParseDate(date)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	holiday, err := s.IsHoliday(ctx, lawyerID, date)
	if err != nil {
		return err
	}

	if holiday {
		template, err := s.templates.Get(ctx, lawyerID)
		if err != nil {
			return err
		}
		hours := template.Day(entities.WeekdayOf(day)).Hours
		if len(hours) == 0 {
			hours = entities.DefaultWorkingHours
		}

		err = s.mutateSlots(ctx, lawyerID, "toggle_date_holiday", func(slots []entities.TimeSlot) ([]entities.TimeSlot, error) {
			existing := make(map[string]struct{}, len(slots))
			for _, slot := range slots {
				existing[slot.ID] = struct{}{}
			}
			for _, slot := range ExpandDay(date, hours) {
				if _, dup := existing[slot.ID]; dup {
					continue
				}
				slots = append(slots, slot)
			}
			return slots, nil
		})
		if err != nil {
			return err
		}
	} else {
		err = s.mutateSlots(ctx, lawyerID, "toggle_date_holiday", func(slots []entities.TimeSlot) ([]entities.TimeSlot, error) {
			next := make([]entities.TimeSlot, 0, len(slots))
			for _, slot := range slots {
				if slot.Date != date {
					next = append(next, slot)
				}
			}
			return next, nil
		})
		if err != nil {
			return err
		}
	}

	s.publish(ctx, lawyerID, entities.ScheduleEventTypeSlotsMutated, map[string]interface{}{"date": date})
	return nil
}

// IsHoliday reports whether a date is a holiday for a lawyer.
//
// An unbooked slot existing on the date always wins: it marks a manual
// override to a working day regardless of the template. Otherwise the
// weekday's template default decides. A date whose slots are all booked
// carries no override and falls back to the template, so a fully booked day
// on a template-holiday weekday still reports as a holiday.
func (s *ScheduleService) IsHoliday(ctx context.Context, lawyerID, date string) (bool, error) {
	if lawyerID == "" {
		return false, apperrors.NewValidationError("lawyer ID is required")
	}
	day, err := entities.ParseDate(date)
	if err != nil {
		return false, apperrors.NewValidationError(err.Error())
	}

	slots, err := s.slots.List(ctx, lawyerID)
	if err != nil {
		return false, err
	}
	for _, slot := range slots {
		if slot.Date == date && !slot.IsBooked {
			return false, nil
		}
	}

	template, err := s.templates.Get(ctx, lawyerID)
	if err != nil {
		return false, err
	}
	return template.Day(entities.WeekdayOf(day)).IsHoliday, nil
}

// MarkSlotBooked flips a slot to booked. It is called by the booking flow
// after the booking record has been persisted and paid.
func (s *ScheduleService) MarkSlotBooked(ctx context.Context, lawyerID, slotID string) error {
	err := s.mutateSlots(ctx, lawyerID, "mark_booked", func(slots []entities.TimeSlot) ([]entities.TimeSlot, error) {
		for i := range slots {
			if slots[i].ID == slotID {
				if slots[i].IsBooked {
					return nil, apperrors.NewConflictError(fmt.Sprintf("slot %s is already booked", slotID))
				}
				slots[i].IsBooked = true
				return slots, nil
			}
		}
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("slot %s not found", slotID))
	})
	if err != nil {
		return err
	}

	s.publish(ctx, lawyerID, entities.ScheduleEventTypeSlotBooked, map[string]interface{}{"slot_id": slotID})
	return nil
}

// GetSlot returns a single slot by ID.
func (s *ScheduleService) GetSlot(ctx context.Context, lawyerID, slotID string) (*entities.TimeSlot, error) {
	slots, err := s.slots.List(ctx, lawyerID)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].ID == slotID {
			return &slots[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("slot %s not found", slotID))
}

// mutateSlots serializes a read-modify-write of the lawyer's slot list.
func (s *ScheduleService) mutateSlots(ctx context.Context, lawyerID, operation string, fn repositories.SlotMutator) error {
	lock := s.lawyerLock(lawyerID)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	err := s.slots.Mutate(ctx, lawyerID, fn)
	if s.metrics != nil {
		observability.RecordSlotMutation(ctx, s.metrics, operation, time.Since(start))
	}
	return err
}

// publish broadcasts a schedule event; delivery failures are logged by the
// bus and never fail the mutation that triggered them.
func (s *ScheduleService) publish(ctx context.Context, lawyerID string, eventType entities.ScheduleEventType, fields map[string]interface{}) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewScheduleEvent(lawyerID, eventType, fields)
	if err := s.eventBus.Publish(ctx, providers.GetScheduleChannel(lawyerID), event); err != nil {
		observability.GetLogger().Warn().Err(err).Str("lawyer_id", lawyerID).Msg("failed to publish schedule event")
	}
}
