package services

import (
	"context"
	"fmt"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/observability"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// PricingService owns the consultation pricing matrix: one record per
// (lawyer, duration bucket) with three channel prices.
//
// Two update paths exist and must not clobber each other: a global
// percentage application rederives phone and video prices from the in-person
// price, while an explicit per-channel edit overwrites exactly one field.
// Whichever ran last holds the value; nothing is versioned.
type PricingService struct {
	pricing  repositories.PricingRepository
	eventBus providers.EventBus
}

// NewPricingService creates a new pricing service
func NewPricingService(pricing repositories.PricingRepository) *PricingService {
	return &PricingService{pricing: pricing}
}

// SetEventBus wires an event bus for pricing change notifications
func (s *PricingService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// ListPricing returns every pricing record stored for a lawyer.
func (s *PricingService) ListPricing(ctx context.Context, lawyerID string) ([]entities.ConsultationPricing, error) {
	return s.pricing.List(ctx, lawyerID)
}

// GetPricing returns the pricing record for one duration bucket.
func (s *PricingService) GetPricing(ctx context.Context, lawyerID string, duration entities.ConsultationDuration) (*entities.ConsultationPricing, error) {
	if !entities.IsValidDuration(duration) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown duration: %s", duration))
	}
	return s.pricing.Get(ctx, lawyerID, duration)
}

// ApplyGlobalPercentage rederives phone and video prices as
// round(inPersonPrice * pct / 100) for every duration bucket and stores the
// percentages alongside each record. Buckets the lawyer has never priced are
// seeded from the documented defaults first, so the matrix stays complete.
func (s *PricingService) ApplyGlobalPercentage(ctx context.Context, lawyerID string, phonePct, videoPct int) error {
	if lawyerID == "" {
		return apperrors.NewValidationError("lawyer ID is required")
	}
	if phonePct < 0 || phonePct > 100 || videoPct < 0 || videoPct > 100 {
		return apperrors.NewValidationError("percentages must be between 0 and 100")
	}

	err := s.pricing.Mutate(ctx, lawyerID, func(records []entities.ConsultationPricing) ([]entities.ConsultationPricing, error) {
		byDuration := make(map[entities.ConsultationDuration]int, len(records))
		for i := range records {
			byDuration[records[i].Duration] = i
		}

		for _, duration := range entities.ConsultationDurations {
			i, ok := byDuration[duration]
			if !ok {
				records = append(records, *entities.NewConsultationPricing(lawyerID, duration, phonePct, videoPct))
				continue
			}
			records[i].PhonePrice = entities.DerivePrice(records[i].InPersonPrice, phonePct)
			records[i].VideoPrice = entities.DerivePrice(records[i].InPersonPrice, videoPct)
			records[i].PhonePercentage = phonePct
			records[i].VideoPercentage = videoPct
		}
		return records, nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, lawyerID, map[string]interface{}{
		"phone_percentage": phonePct,
		"video_percentage": videoPct,
	})
	return nil
}

// SetExplicitPrice overwrites one channel's price for one duration bucket,
// creating the record from defaults if the lawyer has never priced that
// duration. The other two channel prices are left untouched. Negative
// amounts are coerced to zero rather than rejected.
func (s *PricingService) SetExplicitPrice(ctx context.Context, lawyerID string, duration entities.ConsultationDuration, channel entities.ConsultationChannel, amount int) error {
	if lawyerID == "" {
		return apperrors.NewValidationError("lawyer ID is required")
	}
	if !entities.IsValidDuration(duration) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown duration: %s", duration))
	}
	if !entities.IsValidChannel(channel) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown channel: %s", channel))
	}
	amount = entities.CoercePrice(amount)

	err := s.pricing.Mutate(ctx, lawyerID, func(records []entities.ConsultationPricing) ([]entities.ConsultationPricing, error) {
		idx := -1
		phonePct, videoPct := entities.DefaultPhonePercentage, entities.DefaultVideoPercentage
		for i := range records {
			// Seed a fresh record with the lawyer's last-known percentages.
			phonePct = records[i].PhonePercentage
			videoPct = records[i].VideoPercentage
			if records[i].Duration == duration {
				idx = i
			}
		}

		if idx == -1 {
			records = append(records, *entities.NewConsultationPricing(lawyerID, duration, phonePct, videoPct))
			idx = len(records) - 1
		}

		switch channel {
		case entities.ChannelInPerson:
			records[idx].InPersonPrice = amount
		case entities.ChannelPhone:
			records[idx].PhonePrice = amount
		case entities.ChannelVideo:
			records[idx].VideoPrice = amount
		}
		return records, nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, lawyerID, map[string]interface{}{
		"duration": string(duration),
		"channel":  string(channel),
	})
	return nil
}

// SetActive hides or shows a duration bucket in bookable options without
// deleting its price history.
func (s *PricingService) SetActive(ctx context.Context, lawyerID string, duration entities.ConsultationDuration, active bool) error {
	if !entities.IsValidDuration(duration) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown duration: %s", duration))
	}

	found := false
	err := s.pricing.Mutate(ctx, lawyerID, func(records []entities.ConsultationPricing) ([]entities.ConsultationPricing, error) {
		for i := range records {
			if records[i].Duration == duration {
				records[i].IsActive = active
				found = true
				return records, nil
			}
		}
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no pricing for duration %s", duration))
	})
	if err != nil {
		return err
	}
	if found {
		s.publish(ctx, lawyerID, map[string]interface{}{
			"duration":  string(duration),
			"is_active": active,
		})
	}
	return nil
}

// ChannelPrice returns the price of a pricing record for the given channel.
func ChannelPrice(p *entities.ConsultationPricing, channel entities.ConsultationChannel) (int, error) {
	switch channel {
	case entities.ChannelInPerson:
		return p.InPersonPrice, nil
	case entities.ChannelPhone:
		return p.PhonePrice, nil
	case entities.ChannelVideo:
		return p.VideoPrice, nil
	}
	return 0, apperrors.NewValidationError(fmt.Sprintf("unknown channel: %s", channel))
}

func (s *PricingService) publish(ctx context.Context, lawyerID string, fields map[string]interface{}) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewScheduleEvent(lawyerID, entities.ScheduleEventTypePricingUpdated, fields)
	if err := s.eventBus.Publish(ctx, providers.GetScheduleChannel(lawyerID), event); err != nil {
		observability.GetLogger().Warn().Err(err).Str("lawyer_id", lawyerID).Msg("failed to publish pricing event")
	}
}
