// Package gateway is the boundary to the external generation/grading service.
// The rest of the application depends only on the typed contracts in this
// file; the Gemini implementation is one interchangeable provider.
package gateway

import (
	"context"

	"github.com/vdtri/toeicmate/internal/model"
)

// GeneratedQuestion is one writing exercise produced by the generation
// service. For task1 Content is itself a JSON-encoded array of
// {id, scenario, keywords[2]} scenarios.
type GeneratedQuestion struct {
	Type        model.TaskType `json:"type"`
	Content     string         `json:"content"`
	Keywords    []string       `json:"keywords,omitempty"`
	Description string         `json:"description,omitempty"`
}

// GrammarError is one marked mistake inside a graded response.
type GrammarError struct {
	Text        string `json:"text"`
	Type        string `json:"type,omitempty"`
	Correction  string `json:"correction"`
	Explanation string `json:"explanation"`
}

// KeywordsUsed reports task1 keyword coverage.
type KeywordsUsed struct {
	Keyword1 bool `json:"keyword1"`
	Keyword2 bool `json:"keyword2"`
}

// ScenarioResult is the per-scenario breakdown of a task1 grading.
type ScenarioResult struct {
	ID            int            `json:"id"`
	Score         float64        `json:"score"`
	KeywordsUsed  KeywordsUsed   `json:"keywords_used"`
	Errors        []GrammarError `json:"errors,omitempty"`
	BetterVersion string         `json:"better_version,omitempty"`
	Feedback      string         `json:"feedback,omitempty"`
}

// RequestsAnswered reports how many of a task2 email's requests the response
// addressed.
type RequestsAnswered struct {
	TotalRequests int      `json:"total_requests"`
	Answered      int      `json:"answered"`
	Missing       []string `json:"missing,omitempty"`
}

// FormatCheck reports task2 email conventions.
type FormatCheck struct {
	HasGreeting  bool `json:"has_greeting"`
	HasClosing   bool `json:"has_closing"`
	HasSignature bool `json:"has_signature"`
}

// StructureAnalysis reports task3 essay structure.
type StructureAnalysis struct {
	HasIntroduction   bool `json:"has_introduction"`
	HasBodyParagraphs bool `json:"has_body_paragraphs"`
	HasConclusion     bool `json:"has_conclusion"`
	HasExamples       bool `json:"has_examples"`
}

// WritingEvaluation is the grading result for a writing task. Task-specific
// fields are nil/zero for the tasks they do not apply to; the whole struct is
// stored opaquely on the Attempt and decoded again only at render time.
type WritingEvaluation struct {
	Score            float64        `json:"score"`
	OverallScore     *float64       `json:"overall_score,omitempty"` // task1 total (0-50)
	ProficiencyLevel string         `json:"proficiencyLevel,omitempty"`
	Feedback         string         `json:"feedback"`
	Errors           []GrammarError `json:"errors,omitempty"`
	BetterVersion    string         `json:"better_version,omitempty"`
	SampleResponse   string         `json:"sample_response,omitempty"`
	SampleEssay      string         `json:"sample_essay,omitempty"`

	// task1
	Questions    []ScenarioResult `json:"questions,omitempty"`
	KeywordsUsed *KeywordsUsed    `json:"keywords_used,omitempty"`

	// task2
	RequestsAnswered *RequestsAnswered `json:"requests_answered,omitempty"`
	FormatCheck      *FormatCheck      `json:"format_check,omitempty"`

	// task3
	WordCount         int                `json:"word_count,omitempty"`
	StructureAnalysis *StructureAnalysis `json:"structure_analysis,omitempty"`
}

// WritingEvaluationRequest carries a finalized writing answer to grading.
type WritingEvaluationRequest struct {
	TaskType        model.TaskType
	UserContent     string
	QuestionContent string
	Keywords        []string
}

// ReadingAnswer pairs a question with the user's choice for grading.
type ReadingAnswer struct {
	QuestionID    int    `json:"id"`
	Sentence      string `json:"sentence,omitempty"`
	QuestionText  string `json:"questionText,omitempty"`
	QuestionType  string `json:"questionType,omitempty"`
	BlankNumber   int    `json:"blankNumber,omitempty"`
	Options       []string `json:"options"`
	CorrectAnswer string `json:"correctAnswer"`
	UserAnswer    string `json:"userAnswer"`
}

// ReadingPassageAnswers groups part 6/7 answers under their passage.
type ReadingPassageAnswers struct {
	PassageID    int             `json:"passageId"`
	PassageType  string          `json:"passageType,omitempty"`
	PassageText  string          `json:"passageText,omitempty"`
	PassageTexts []string        `json:"passageTexts,omitempty"`
	Questions    []ReadingAnswer `json:"questions"`
}

// ReadingEvaluationRequest carries a completed reading test to grading.
// Questions is used for part 5, Passages for parts 6 and 7.
type ReadingEvaluationRequest struct {
	Part      int
	Questions []ReadingAnswer
	Passages  []ReadingPassageAnswers
}

// ReadingQuestionResult is the per-question grading outcome.
type ReadingQuestionResult struct {
	QuestionID    int    `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
	WrongOptions  []struct {
		Option string `json:"option"`
		Reason string `json:"reason"`
	} `json:"wrongOptions,omitempty"`
	GrammarPoint  string `json:"grammarPoint,omitempty"`
	Tip           string `json:"tip,omitempty"`
	CoherenceNote string `json:"coherenceNote,omitempty"`
	Evidence      string `json:"evidence,omitempty"`
	QuestionText  string `json:"questionText,omitempty"`
	QuestionType  string `json:"questionType,omitempty"`
	BlankNumber   int    `json:"blankNumber,omitempty"`
}

// ReadingPassageResult groups question results per passage for parts 6/7.
type ReadingPassageResult struct {
	PassageID       int                     `json:"passageId"`
	PassageType     string                  `json:"passageType,omitempty"`
	PassageSummary  string                  `json:"passageSummary,omitempty"`
	QuestionResults []ReadingQuestionResult `json:"questionResults"`
}

// ReadingEvaluation is the grading result for a reading test. ScaledScore is
// on the 5-495 TOEIC reading scale.
type ReadingEvaluation struct {
	TotalQuestions   int                     `json:"totalQuestions"`
	CorrectAnswers   int                     `json:"correctAnswers"`
	Score            float64                 `json:"score"`
	ScaledScore      float64                 `json:"scaledScore"`
	ProficiencyLevel string                  `json:"proficiencyLevel,omitempty"`
	Feedback         string                  `json:"feedback"`
	QuestionResults  []ReadingQuestionResult `json:"questionResults,omitempty"`
	PassageResults   []ReadingPassageResult  `json:"passageResults,omitempty"`
}

// TargetVocabulary is a word pair a translation passage wants practiced.
type TargetVocabulary struct {
	Vietnamese  string `json:"vietnamese"`
	English     string `json:"english"`
	Explanation string `json:"explanation,omitempty"`
}

// VietnamesePassage is one generated translation exercise.
type VietnamesePassage struct {
	ID               int                `json:"id"`
	Vietnamese       string             `json:"vietnamese"`
	Topic            string             `json:"topic,omitempty"`
	TargetVocabulary []TargetVocabulary `json:"targetVocabulary,omitempty"`
}

// AxisScore is one 0-25 axis of a translation evaluation.
type AxisScore struct {
	Score   float64 `json:"score"`
	Comment string  `json:"comment,omitempty"`
}

// NewWord is a vocabulary item surfaced by translation feedback, offered to
// the user for saving.
type NewWord struct {
	Vietnamese string `json:"vietnamese"`
	English    string `json:"english"`
	Context    string `json:"context,omitempty"`
}

// TranslationEvaluation is the 0-100 multi-axis grading of a translation.
type TranslationEvaluation struct {
	Score    float64   `json:"score"`
	Feedback string    `json:"feedback"`
	Accuracy AxisScore `json:"accuracy"`
	Grammar  struct {
		Score  float64        `json:"score"`
		Errors []GrammarError `json:"errors,omitempty"`
	} `json:"grammar"`
	Vocabulary struct {
		Score  float64 `json:"score"`
		Issues []struct {
			Text        string `json:"text"`
			Suggestion  string `json:"suggestion"`
			Explanation string `json:"explanation"`
		} `json:"issues,omitempty"`
		NewWords []NewWord `json:"newWords,omitempty"`
	} `json:"vocabulary"`
	Naturalness   AxisScore `json:"naturalness"`
	BetterVersion string    `json:"better_version,omitempty"`
	Suggestions   []string  `json:"suggestions,omitempty"`
}

// TranslationEvaluationRequest carries a finished translation to grading.
type TranslationEvaluationRequest struct {
	VietnamesePassage string
	UserTranslation   string
	ProficiencyLevel  string
	TargetVocabulary  []TargetVocabulary
}

// ProgressAnalysis is the AI's read of a user's recent attempt history.
type ProgressAnalysis struct {
	Trend      string   `json:"trend"` // improving, declining, stable, mixed
	Summary    string   `json:"summary"`
	Level      string   `json:"level"` // CEFR A1-C2
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
	Advice     string   `json:"advice,omitempty"`
}

// Gateway is the generation/grading service contract. Implementations parse
// provider output into these shapes strictly; anything that does not parse is
// a GatewayError. No call is retried here: callers decide whether a
// user-initiated action is worth retrying.
type Gateway interface {
	GenerateWritingQuestions(ctx context.Context, topic string) ([]GeneratedQuestion, error)
	GenerateReadingBatch(ctx context.Context, part int, topic string, batchNumber int) (*model.ReadingBatch, error)
	EvaluateWriting(ctx context.Context, req WritingEvaluationRequest) (*WritingEvaluation, error)
	EvaluateReading(ctx context.Context, req ReadingEvaluationRequest) (*ReadingEvaluation, error)
	GenerateTranslationPassages(ctx context.Context, level, length string, count int) ([]VietnamesePassage, error)
	EvaluateTranslation(ctx context.Context, req TranslationEvaluationRequest) (*TranslationEvaluation, error)
	AnalyzeProgress(ctx context.Context, historyJSON string) (*ProgressAnalysis, error)
}
