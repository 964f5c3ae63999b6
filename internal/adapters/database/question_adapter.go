package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vakilyar/marketplace-backend/pkg/errors"
)

const questionsTable = "questions"

var questionColumns = []interface{}{
	"id", "user_id", "category", "title", "content", "status",
	"answer", "lawyer_id", "created_at", "updated_at",
}

// QuestionAdapter implements the QuestionRepository interface
type QuestionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewQuestionAdapter creates a new question adapter
func NewQuestionAdapter(client *postgres.Client) repositories.QuestionRepository {
	return &QuestionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new question
func (a *QuestionAdapter) Create(ctx context.Context, question *entities.Question) error {
	record := goqu.Record{
		"id":         question.ID,
		"user_id":    question.UserID,
		"category":   question.Category,
		"title":      question.Title,
		"content":    question.Content,
		"status":     question.Status,
		"answer":     sql.NullString{String: question.Answer, Valid: question.Answer != ""},
		"lawyer_id":  sql.NullString{String: question.LawyerID, Valid: question.LawyerID != ""},
		"created_at": question.CreatedAt,
		"updated_at": question.UpdatedAt,
	}

	query, args, err := a.db.Insert(questionsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build question insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create question", err)
	}
	return nil
}

// GetByID retrieves a question by ID
func (a *QuestionAdapter) GetByID(ctx context.Context, id string) (*entities.Question, error) {
	query, args, err := a.db.Select(questionColumns...).
		From(questionsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build question query", err)
	}

	question := &entities.Question{}
	err = scanQuestion(a.client.DB().QueryRowContext(ctx, query, args...), question)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("question with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get question", err)
	}
	return question, nil
}

// Update updates a question
func (a *QuestionAdapter) Update(ctx context.Context, question *entities.Question) error {
	query, args, err := a.db.Update(questionsTable).
		Set(goqu.Record{
			"status":     question.Status,
			"answer":     sql.NullString{String: question.Answer, Valid: question.Answer != ""},
			"lawyer_id":  sql.NullString{String: question.LawyerID, Valid: question.LawyerID != ""},
			"updated_at": question.UpdatedAt,
		}).
		Where(goqu.Ex{"id": question.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build question update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update question", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("question with id %s not found", question.ID))
	}
	return nil
}

// ListByUser retrieves questions submitted by a user
func (a *QuestionAdapter) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Question, error) {
	return a.list(ctx, goqu.Ex{"user_id": userID}, limit, offset)
}

// ListOpen retrieves unanswered questions, optionally by category
func (a *QuestionAdapter) ListOpen(ctx context.Context, category string, limit, offset int) ([]*entities.Question, error) {
	where := goqu.Ex{"status": entities.QuestionStatusOpen}
	if category != "" {
		where["category"] = category
	}
	return a.list(ctx, where, limit, offset)
}

func (a *QuestionAdapter) list(ctx context.Context, where goqu.Ex, limit, offset int) ([]*entities.Question, error) {
	if limit <= 0 {
		limit = 30
	}

	query, args, err := a.db.Select(questionColumns...).
		From(questionsTable).
		Where(where).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build question list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list questions", err)
	}
	defer rows.Close()

	var questions []*entities.Question
	for rows.Next() {
		question := &entities.Question{}
		if err := scanQuestion(rows, question); err != nil {
			return nil, apperrors.NewInternalError("failed to scan question", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read question rows", err)
	}
	return questions, nil
}

func scanQuestion(row rowScanner, question *entities.Question) error {
	var answer, lawyerID sql.NullString
	err := row.Scan(
		&question.ID,
		&question.UserID,
		&question.Category,
		&question.Title,
		&question.Content,
		&question.Status,
		&answer,
		&lawyerID,
		&question.CreatedAt,
		&question.UpdatedAt,
	)
	if err != nil {
		return err
	}
	question.Answer = answer.String
	question.LawyerID = lawyerID.String
	return nil
}
