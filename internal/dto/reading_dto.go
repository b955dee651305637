package dto

import "github.com/vdtri/toeicmate/internal/model"

// GenerateReadingRequest starts a multi-round reading test generation.
type GenerateReadingRequest struct {
	Part  int    `json:"part" binding:"required"`
	Topic string `json:"topic,omitempty"`
}

// ReadingProgressDTO is one progress frame streamed while rounds arrive. Test
// carries everything merged so far, so a client can render partial content.
type ReadingProgressDTO struct {
	Round       int                `json:"round"`
	TotalRounds int                `json:"total_rounds"`
	Done        bool               `json:"done"`
	Error       string             `json:"error,omitempty"`
	Test        *model.WorkingTest `json:"test,omitempty"`
}

// SubmitReadingRequest is a completed reading test: the test as displayed
// plus the user's answers keyed by question id.
type SubmitReadingRequest struct {
	Test    *model.WorkingTest `json:"test" binding:"required"`
	Answers map[int]string     `json:"answers" binding:"required"`
}

// GenerateTranslationRequest asks for translation practice passages.
type GenerateTranslationRequest struct {
	ProficiencyLevel string `json:"proficiency_level" binding:"required"`
	PassageLength    string `json:"passage_length" binding:"required"`
	Count            int    `json:"count,omitempty"`
}

// TargetVocabularyDTO is a word the translation passage was built around.
type TargetVocabularyDTO struct {
	Vietnamese string `json:"vietnamese"`
	English    string `json:"english"`
}

// SubmitTranslationRequest is a finished translation for grading.
type SubmitTranslationRequest struct {
	Passage          string                `json:"passage" binding:"required"`
	UserTranslation  string                `json:"user_translation" binding:"required"`
	ProficiencyLevel string                `json:"proficiency_level,omitempty"`
	TargetVocabulary []TargetVocabularyDTO `json:"target_vocabulary,omitempty"`
}
