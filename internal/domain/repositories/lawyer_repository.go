package repositories

import (
	"context"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// LawyerRepository defines the interface for lawyer profile data operations
type LawyerRepository interface {
	// Create creates a new lawyer profile
	Create(ctx context.Context, lawyer *entities.Lawyer) error

	// GetByID retrieves a lawyer by ID
	GetByID(ctx context.Context, id string) (*entities.Lawyer, error)

	// Update updates a lawyer profile
	Update(ctx context.Context, lawyer *entities.Lawyer) error

	// List retrieves lawyers matching the filter
	List(ctx context.Context, filter LawyerFilter) ([]*entities.Lawyer, error)
}

// LawyerSearchRepository defines the interface for lawyer directory search
// operations (e.g. Typesense)
type LawyerSearchRepository interface {
	// IndexLawyer upserts a lawyer document into the search index
	IndexLawyer(ctx context.Context, lawyer *entities.Lawyer) error

	// RemoveLawyer deletes a lawyer document from the search index
	RemoveLawyer(ctx context.Context, id string) error

	// Search performs a full-text search over lawyer profiles
	Search(ctx context.Context, params LawyerSearchParams) ([]*entities.Lawyer, error)
}

// LawyerFilter defines filters for listing lawyers
type LawyerFilter struct {
	Specialty  string
	City       string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// LawyerSearchParams defines parameters for lawyer search
type LawyerSearchParams struct {
	Query     string
	Specialty string
	City      string
	MinRating float64
	Limit     int
	Offset    int
}
