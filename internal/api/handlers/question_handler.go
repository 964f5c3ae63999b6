package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vakilyar/marketplace-backend/internal/application/services"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
)

// QuestionHandler handles legal question HTTP requests
type QuestionHandler struct {
	questionService *services.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// AskQuestion handles POST /api/questions
func (h *QuestionHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(r)

	var question entities.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := ""
	if session != nil {
		userID = session.UserID
	}
	created, err := h.questionService.Ask(r.Context(), userID, &question)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GetQuestion handles GET /api/questions/{id}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		respondWithError(w, http.StatusBadRequest, "question ID is required")
		return
	}

	question, err := h.questionService.GetByID(r.Context(), questionID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, question)
}

// AnswerQuestion handles POST /api/questions/{id}/answer
func (h *QuestionHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		respondWithError(w, http.StatusBadRequest, "question ID is required")
		return
	}

	var req struct {
		LawyerID string `json:"lawyer_id"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.questionService.Answer(r.Context(), req.LawyerID, questionID, req.Answer)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, question)
}

// ListQuestions handles GET /api/questions
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	var (
		questions []*entities.Question
		err       error
	)
	if session := sessionFromRequest(r); session.Authenticated() && r.URL.Query().Get("mine") == "true" {
		questions, err = h.questionService.ListByUser(r.Context(), session.UserID, limit, offset)
	} else {
		questions, err = h.questionService.ListOpen(r.Context(), r.URL.Query().Get("category"), limit, offset)
	}
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}
