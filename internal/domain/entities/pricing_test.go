package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePrice(t *testing.T) {
	assert.Equal(t, 200000, DerivePrice(250000, 80))
	assert.Equal(t, 225000, DerivePrice(250000, 90))
	assert.Equal(t, 250000, DerivePrice(250000, 100))
	assert.Equal(t, 0, DerivePrice(250000, 0))

	// Rounds to nearest, not truncates
	assert.Equal(t, 83, DerivePrice(111, 75))
}

func TestCoercePrice(t *testing.T) {
	assert.Equal(t, 0, CoercePrice(-1))
	assert.Equal(t, 0, CoercePrice(-500000))
	assert.Equal(t, 0, CoercePrice(0))
	assert.Equal(t, 180000, CoercePrice(180000))
}

func TestNewConsultationPricing(t *testing.T) {
	p := NewConsultationPricing("lawyer-1", Duration60Min, DefaultPhonePercentage, DefaultVideoPercentage)

	assert.Equal(t, "lawyer-1-60min", p.ID)
	assert.Equal(t, 250000, p.InPersonPrice)
	assert.Equal(t, 200000, p.PhonePrice)
	assert.Equal(t, 225000, p.VideoPrice)
	assert.True(t, p.IsActive)
}

func TestIsValidDuration(t *testing.T) {
	for _, d := range ConsultationDurations {
		assert.True(t, IsValidDuration(d))
	}
	assert.False(t, IsValidDuration("25min"))
	assert.False(t, IsValidDuration(""))
}

func TestIsValidChannel(t *testing.T) {
	assert.True(t, IsValidChannel(ChannelInPerson))
	assert.True(t, IsValidChannel(ChannelPhone))
	assert.True(t, IsValidChannel(ChannelVideo))
	assert.False(t, IsValidChannel("telegram"))
}
