package entities

import (
	"time"
)

// QuestionStatus represents the lifecycle state of a legal question.
type QuestionStatus string

const (
	QuestionStatusOpen     QuestionStatus = "open"
	QuestionStatusAnswered QuestionStatus = "answered"
	QuestionStatusClosed   QuestionStatus = "closed"
)

// Question is a free-form legal question submitted by a user. Category,
// title and content are all required at submission time.
type Question struct {
	ID        string         `json:"id" db:"id"`
	UserID    string         `json:"user_id" db:"user_id"`
	Category  string         `json:"category" db:"category"`
	Title     string         `json:"title" db:"title"`
	Content   string         `json:"content" db:"content"`
	Status    QuestionStatus `json:"status" db:"status"`
	Answer    string         `json:"answer" db:"answer"`
	LawyerID  string         `json:"lawyer_id" db:"lawyer_id"` // answering lawyer, empty until answered
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}
