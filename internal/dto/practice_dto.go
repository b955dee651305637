package dto

import (
	"encoding/json"
	"time"
)

// GenerateQuestionsRequest asks for a fresh AI-generated writing set.
type GenerateQuestionsRequest struct {
	Topic string `json:"topic,omitempty"`
}

type GeneratedQuestionDTO struct {
	Type        string   `json:"type"`
	Content     string   `json:"content"`
	Keywords    []string `json:"keywords,omitempty"`
	Description string   `json:"description,omitempty"`
}

// SubmitWritingRequest is a finalized writing answer.
type SubmitWritingRequest struct {
	TaskType        string   `json:"task_type" binding:"required"`
	UserContent     string   `json:"user_content" binding:"required"`
	QuestionContent string   `json:"question_content,omitempty"`
	QuestionID      *uint    `json:"question_id,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// AttemptDTO is the persisted attempt as shown in history and results views.
// AIFeedback is passed through as raw JSON; its shape depends on TaskType.
type AttemptDTO struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	TaskType        string          `json:"task_type"`
	QuestionID      *uint           `json:"question_id,omitempty"`
	UserContent     string          `json:"user_content"`
	QuestionContent string          `json:"question_content,omitempty"`
	AIFeedback      json.RawMessage `json:"ai_feedback,omitempty"`
	Score           *float64        `json:"score,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
}

// SubmitResultDTO returns the new attempt id for navigation to the results
// view along with the full attempt.
type SubmitResultDTO struct {
	AttemptID uint       `json:"attempt_id"`
	Attempt   AttemptDTO `json:"attempt"`
}

// QuestionDTO is a library question.
type QuestionDTO struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	Level       string    `json:"level,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SaveQuestionRequest saves one question to the library.
type SaveQuestionRequest struct {
	Type        string   `json:"type" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Description string   `json:"description,omitempty"`
	Level       string   `json:"level,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// ImportResultDTO reports a bulk import outcome.
type ImportResultDTO struct {
	Imported int `json:"imported"`
}
