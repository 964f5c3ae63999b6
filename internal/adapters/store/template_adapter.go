package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// TemplateAdapter persists weekly templates in the key-value store under
// weeklyTemplate_<lawyerID>, one whole template per key.
type TemplateAdapter struct {
	store providers.KVStore
}

// NewTemplateAdapter creates a new weekly template adapter
func NewTemplateAdapter(store providers.KVStore) repositories.TemplateRepository {
	return &TemplateAdapter{store: store}
}

// Get retrieves a lawyer's weekly template. A lawyer who has never configured
// availability gets the default template, which is persisted on first read so
// later writers start from the same state.
func (a *TemplateAdapter) Get(ctx context.Context, lawyerID string) (*entities.WeeklyTemplate, error) {
	if lawyerID == "" {
		return nil, apperrors.NewValidationError("lawyer ID is required")
	}

	data, err := a.store.Get(ctx, providers.WeeklyTemplateKey(lawyerID))
	if errors.Is(err, providers.ErrKeyNotFound) {
		template := entities.DefaultWeeklyTemplate(lawyerID)
		if err := a.Save(ctx, template); err != nil {
			return nil, err
		}
		return template, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load weekly template", err)
	}

	var template entities.WeeklyTemplate
	if err := json.Unmarshal(data, &template); err != nil {
		return nil, apperrors.NewInternalError("failed to decode weekly template", err)
	}
	template.LawyerID = lawyerID
	return &template, nil
}

// Save overwrites a lawyer's weekly template.
func (a *TemplateAdapter) Save(ctx context.Context, template *entities.WeeklyTemplate) error {
	if template == nil || template.LawyerID == "" {
		return apperrors.NewValidationError("template with lawyer ID is required")
	}

	data, err := json.Marshal(template)
	if err != nil {
		return apperrors.NewInternalError("failed to encode weekly template", err)
	}

	if err := a.store.Set(ctx, providers.WeeklyTemplateKey(template.LawyerID), data, 0); err != nil {
		return apperrors.NewStoreError("failed to save weekly template", err)
	}
	return nil
}
