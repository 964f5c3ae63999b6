package entities

import (
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is a confirmed consultation reservation. It references exactly one
// time slot, one pricing record and one channel; the referenced slot is
// flipped to booked only after the booking itself has been persisted and paid.
type Booking struct {
	ID         string               `json:"id" db:"id"`
	UserID     string               `json:"user_id" db:"user_id"`
	LawyerID   string               `json:"lawyer_id" db:"lawyer_id"`
	SlotID     string               `json:"slot_id" db:"slot_id"`
	SlotDate   string               `json:"slot_date" db:"slot_date"`
	PricingID  string               `json:"pricing_id" db:"pricing_id"`
	Duration   ConsultationDuration `json:"duration" db:"duration"`
	Channel    ConsultationChannel  `json:"channel" db:"channel"`
	Price      int                  `json:"price" db:"price"`
	Status     BookingStatus        `json:"status" db:"status"`
	PaymentRef string               `json:"payment_ref" db:"payment_ref"`
	CreatedAt  time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" db:"updated_at"`
}

// Session identifies the authenticated caller of a booking flow. A nil or
// zero-ID session means the caller is not signed in.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}
