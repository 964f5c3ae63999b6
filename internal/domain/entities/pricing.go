package entities

import "math"

// ConsultationDuration is one of the fixed consultation length buckets.
type ConsultationDuration string

const (
	Duration15Min  ConsultationDuration = "15min"
	Duration30Min  ConsultationDuration = "30min"
	Duration45Min  ConsultationDuration = "45min"
	Duration60Min  ConsultationDuration = "60min"
	Duration90Min  ConsultationDuration = "90min"
	Duration120Min ConsultationDuration = "120min"
)

// ConsultationDurations lists every duration bucket in ascending order.
var ConsultationDurations = []ConsultationDuration{
	Duration15Min,
	Duration30Min,
	Duration45Min,
	Duration60Min,
	Duration90Min,
	Duration120Min,
}

// IsValidDuration reports whether d is a known duration bucket.
func IsValidDuration(d ConsultationDuration) bool {
	for _, known := range ConsultationDurations {
		if d == known {
			return true
		}
	}
	return false
}

// ConsultationChannel is the medium a consultation is held through.
type ConsultationChannel string

const (
	ChannelInPerson ConsultationChannel = "in_person"
	ChannelPhone    ConsultationChannel = "phone"
	ChannelVideo    ConsultationChannel = "video"
)

// IsValidChannel reports whether c is a known consultation channel.
func IsValidChannel(c ConsultationChannel) bool {
	switch c {
	case ChannelInPerson, ChannelPhone, ChannelVideo:
		return true
	}
	return false
}

// DefaultInPersonPrices seeds a duration's in-person price the first time a
// lawyer edits it. Amounts are plain integers in the display currency unit.
var DefaultInPersonPrices = map[ConsultationDuration]int{
	Duration15Min:  100000,
	Duration30Min:  150000,
	Duration45Min:  200000,
	Duration60Min:  250000,
	Duration90Min:  350000,
	Duration120Min: 450000,
}

// Default phone/video percentages applied before the lawyer sets their own.
const (
	DefaultPhonePercentage = 80
	DefaultVideoPercentage = 90
)

// ConsultationPricing holds one lawyer's prices for a single duration bucket.
// PhonePrice and VideoPrice are derived from InPersonPrice whenever a global
// percentage is applied, but a direct per-channel edit overwrites only that
// channel and must survive until the next explicit write.
type ConsultationPricing struct {
	ID              string               `json:"id"`
	LawyerID        string               `json:"lawyer_id"`
	Duration        ConsultationDuration `json:"duration"`
	InPersonPrice   int                  `json:"in_person_price"`
	PhonePrice      int                  `json:"phone_price"`
	VideoPrice      int                  `json:"video_price"`
	PhonePercentage int                  `json:"phone_percentage"` // 0-100
	VideoPercentage int                  `json:"video_percentage"` // 0-100
	IsActive        bool                 `json:"is_active"`
}

// PricingID derives the deterministic pricing record identifier.
func PricingID(lawyerID string, duration ConsultationDuration) string {
	return lawyerID + "-" + string(duration)
}

// NewConsultationPricing seeds a pricing record from the documented default
// price for the duration and the given percentages.
func NewConsultationPricing(lawyerID string, duration ConsultationDuration, phonePct, videoPct int) *ConsultationPricing {
	inPerson := DefaultInPersonPrices[duration]
	return &ConsultationPricing{
		ID:              PricingID(lawyerID, duration),
		LawyerID:        lawyerID,
		Duration:        duration,
		InPersonPrice:   inPerson,
		PhonePrice:      DerivePrice(inPerson, phonePct),
		VideoPrice:      DerivePrice(inPerson, videoPct),
		PhonePercentage: phonePct,
		VideoPercentage: videoPct,
		IsActive:        true,
	}
}

// DerivePrice computes round(base * percentage / 100).
func DerivePrice(base, percentage int) int {
	return int(math.Round(float64(base) * float64(percentage) / 100))
}

// CoercePrice applies the parse-failure policy for price input: anything
// negative collapses to zero rather than being rejected.
func CoercePrice(amount int) int {
	if amount < 0 {
		return 0
	}
	return amount
}
