package model

import "time"

// Attempt is one persisted, graded practice submission. It is immutable once
// created: the question snapshot and the grading payload are frozen at grading
// time so historic display never depends on the Question collection.
type Attempt struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	UserID     uint     `json:"user_id" gorm:"not null;index"`
	TaskType   TaskType `json:"task_type" gorm:"not null;index"`
	QuestionID *uint    `json:"question_id,omitempty" gorm:"index"`

	// UserContent is the submitted text, or a serialized answer map for
	// reading parts.
	UserContent string `json:"user_content" gorm:"type:text;not null"`

	// QuestionContent is a serialized snapshot of the question or working
	// test as it was shown to the user.
	QuestionContent string `json:"question_content,omitempty" gorm:"type:text"`

	// AIFeedback is the grading result serialized as JSON. The store treats
	// it as an opaque payload; its shape depends on TaskType and is decoded
	// only at render time.
	AIFeedback string `json:"ai_feedback,omitempty" gorm:"type:text"`

	Score     *float64  `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
}
