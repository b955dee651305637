package dto

import "time"

type AddVocabularyRequest struct {
	Vietnamese       string `json:"vietnamese" binding:"required"`
	English          string `json:"english" binding:"required"`
	Context          string `json:"context,omitempty"`
	ProficiencyLevel string `json:"proficiency_level,omitempty"`
}

type VocabularyDTO struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	Vietnamese       string    `json:"vietnamese"`
	English          string    `json:"english"`
	Context          string    `json:"context,omitempty"`
	ProficiencyLevel string    `json:"proficiency_level,omitempty"`
	AddedAt          time.Time `json:"added_at"`
}
