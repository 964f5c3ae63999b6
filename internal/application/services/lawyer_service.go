package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// LawyerService handles the lawyer directory users browse and filter.
type LawyerService struct {
	repo       repositories.LawyerRepository
	searchRepo repositories.LawyerSearchRepository
}

// NewLawyerService creates a new lawyer service
func NewLawyerService(repo repositories.LawyerRepository, searchRepo repositories.LawyerSearchRepository) *LawyerService {
	return &LawyerService{
		repo:       repo,
		searchRepo: searchRepo,
	}
}

// Register creates a new lawyer profile and indexes it
func (s *LawyerService) Register(ctx context.Context, lawyer *entities.Lawyer) error {
	if lawyer == nil {
		return apperrors.NewValidationError("lawyer is required")
	}
	if strings.TrimSpace(lawyer.Name) == "" {
		return apperrors.NewValidationError("lawyer name is required")
	}
	if strings.TrimSpace(lawyer.Specialty) == "" {
		return apperrors.NewValidationError("lawyer specialty is required")
	}

	if lawyer.ID == "" {
		lawyer.ID = uuid.New().String()
	}
	now := time.Now()
	lawyer.CreatedAt = now
	lawyer.UpdatedAt = now
	lawyer.IsActive = true

	// 1. Save to database
	if err := s.repo.Create(ctx, lawyer); err != nil {
		return err
	}

	// 2. Index in search engine (eventual consistency, don't fail the request)
	if s.searchRepo != nil {
		if err := s.searchRepo.IndexLawyer(ctx, lawyer); err != nil {
			log.Warn().Err(err).Str("lawyer_id", lawyer.ID).Msg("failed to index lawyer")
		}
	}

	return nil
}

// GetByID retrieves a lawyer by ID
func (s *LawyerService) GetByID(ctx context.Context, id string) (*entities.Lawyer, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("lawyer ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Update updates a lawyer profile and its index entry
func (s *LawyerService) Update(ctx context.Context, lawyer *entities.Lawyer) error {
	if lawyer == nil || lawyer.ID == "" {
		return apperrors.NewValidationError("lawyer with ID is required")
	}
	lawyer.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, lawyer); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.IndexLawyer(ctx, lawyer); err != nil {
			log.Warn().Err(err).Str("lawyer_id", lawyer.ID).Msg("failed to update lawyer index")
		}
	}

	return nil
}

// List retrieves lawyers matching the filter
func (s *LawyerService) List(ctx context.Context, filter repositories.LawyerFilter) ([]*entities.Lawyer, error) {
	if filter.Limit <= 0 {
		filter.Limit = 30
	}
	return s.repo.List(ctx, filter)
}

// Search performs a full-text search over lawyer profiles, falling back to a
// filtered database listing when the search engine is unavailable.
func (s *LawyerService) Search(ctx context.Context, params repositories.LawyerSearchParams) ([]*entities.Lawyer, error) {
	if params.Limit <= 0 {
		params.Limit = 30
	}

	if s.searchRepo != nil {
		lawyers, err := s.searchRepo.Search(ctx, params)
		if err == nil {
			return lawyers, nil
		}
		log.Warn().Err(err).Msg("lawyer search failed, falling back to database listing")
	}

	return s.repo.List(ctx, repositories.LawyerFilter{
		Specialty:  params.Specialty,
		City:       params.City,
		ActiveOnly: true,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
}
