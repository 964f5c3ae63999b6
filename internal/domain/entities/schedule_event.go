package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ScheduleEventType represents the type of schedule change event
type ScheduleEventType string

const (
	ScheduleEventTypeTemplateSaved  ScheduleEventType = "template_saved"
	ScheduleEventTypeRangeApplied   ScheduleEventType = "range_applied"
	ScheduleEventTypeSlotsMutated   ScheduleEventType = "slots_mutated"
	ScheduleEventTypeSlotBooked     ScheduleEventType = "slot_booked"
	ScheduleEventTypePricingUpdated ScheduleEventType = "pricing_updated"
)

// ScheduleEvent is broadcast after a lawyer's schedule or pricing changes so
// cached reads can be invalidated.
type ScheduleEvent struct {
	ID            string                 `json:"id"`
	LawyerID      string                 `json:"lawyer_id"`
	EventType     ScheduleEventType      `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changed_fields"`
}

// NewScheduleEvent creates a new schedule event
func NewScheduleEvent(lawyerID string, eventType ScheduleEventType, changedFields map[string]interface{}) *ScheduleEvent {
	return &ScheduleEvent{
		ID:            generateEventID(),
		LawyerID:      lawyerID,
		EventType:     eventType,
		Timestamp:     time.Now(),
		ChangedFields: changedFields,
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
