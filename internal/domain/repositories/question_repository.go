package repositories

import (
	"context"

	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// QuestionRepository defines the interface for legal question persistence
type QuestionRepository interface {
	// Create creates a new question
	Create(ctx context.Context, question *entities.Question) error

	// GetByID retrieves a question by ID
	GetByID(ctx context.Context, id string) (*entities.Question, error)

	// Update updates a question (used when a lawyer answers)
	Update(ctx context.Context, question *entities.Question) error

	// ListByUser retrieves questions submitted by a user
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Question, error)

	// ListOpen retrieves unanswered questions, optionally by category
	ListOpen(ctx context.Context, category string, limit, offset int) ([]*entities.Question, error)
}
