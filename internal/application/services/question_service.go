package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

// QuestionService handles the free legal question flow.
type QuestionService struct {
	questions repositories.QuestionRepository
	lawyers   repositories.LawyerRepository
}

// NewQuestionService creates a new question service
func NewQuestionService(questions repositories.QuestionRepository, lawyers repositories.LawyerRepository) *QuestionService {
	return &QuestionService{
		questions: questions,
		lawyers:   lawyers,
	}
}

// Ask submits a new legal question. Category, title and content are all
// required; a missing field stops the submission before anything is written.
func (s *QuestionService) Ask(ctx context.Context, userID string, question *entities.Question) (*entities.Question, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("sign in to ask a question")
	}
	if question == nil {
		return nil, apperrors.NewValidationError("question is required")
	}
	if strings.TrimSpace(question.Category) == "" {
		return nil, apperrors.NewValidationError("a category must be selected")
	}
	if strings.TrimSpace(question.Title) == "" {
		return nil, apperrors.NewValidationError("a title is required")
	}
	if strings.TrimSpace(question.Content) == "" {
		return nil, apperrors.NewValidationError("the question content is required")
	}

	now := time.Now()
	question.ID = uuid.New().String()
	question.UserID = userID
	question.Status = entities.QuestionStatusOpen
	question.Answer = ""
	question.LawyerID = ""
	question.CreatedAt = now
	question.UpdatedAt = now

	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// GetByID retrieves a question by ID
func (s *QuestionService) GetByID(ctx context.Context, id string) (*entities.Question, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("question ID is required")
	}
	return s.questions.GetByID(ctx, id)
}

// Answer records a lawyer's answer on an open question.
func (s *QuestionService) Answer(ctx context.Context, lawyerID, questionID, answer string) (*entities.Question, error) {
	if lawyerID == "" {
		return nil, apperrors.NewUnauthorizedError("sign in as a lawyer to answer")
	}
	if strings.TrimSpace(answer) == "" {
		return nil, apperrors.NewValidationError("an answer is required")
	}

	if _, err := s.lawyers.GetByID(ctx, lawyerID); err != nil {
		return nil, err
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.Status != entities.QuestionStatusOpen {
		return nil, apperrors.NewConflictError("the question has already been answered")
	}

	question.Answer = answer
	question.LawyerID = lawyerID
	question.Status = entities.QuestionStatusAnswered
	question.UpdatedAt = time.Now()

	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListByUser retrieves questions submitted by a user
func (s *QuestionService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Question, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user ID is required")
	}
	if limit <= 0 {
		limit = 30
	}
	return s.questions.ListByUser(ctx, userID, limit, offset)
}

// ListOpen retrieves unanswered questions, optionally filtered by category
func (s *QuestionService) ListOpen(ctx context.Context, category string, limit, offset int) ([]*entities.Question, error) {
	if limit <= 0 {
		limit = 30
	}
	return s.questions.ListOpen(ctx, category, limit, offset)
}
