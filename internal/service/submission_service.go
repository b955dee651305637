package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vdtri/toeicmate/internal/gateway"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/repository"
)

// WritingSubmission is a finalized writing answer ready for grading.
type WritingSubmission struct {
	UserID          uint
	TaskType        model.TaskType
	UserContent     string
	QuestionContent string
	QuestionID      *uint
	Keywords        []string
}

// ReadingSubmission is a completed reading test: the working test as shown
// plus the user's answers keyed by question id.
type ReadingSubmission struct {
	UserID  uint
	Test    *model.WorkingTest
	Answers map[int]string
}

// TranslationSubmission is a finished translation exercise. Translation
// results are returned to the caller but not recorded as Attempts; only new
// vocabulary harvested from the feedback is persisted, by explicit user
// action.
type TranslationSubmission struct {
	UserID           uint
	Passage          string
	UserTranslation  string
	ProficiencyLevel string
	TargetVocabulary []gateway.TargetVocabulary
}

// SubmissionService glues a finalized answer, the grading gateway and the
// entity store together. Grading is fully transactional with respect to
// persistence: either grading succeeds and exactly one Attempt is written, or
// nothing is written and the user's typed answer is left intact for retry.
type SubmissionService interface {
	SubmitWriting(ctx context.Context, sub WritingSubmission) (*model.Attempt, *gateway.WritingEvaluation, error)
	SubmitReading(ctx context.Context, sub ReadingSubmission) (*model.Attempt, *gateway.ReadingEvaluation, error)
	SubmitTranslation(ctx context.Context, sub TranslationSubmission) (*gateway.TranslationEvaluation, error)
}

type submissionService struct {
	attempts       repository.AttemptRepository
	gw             gateway.Gateway
	scoreConverter ScoreConverterService
	db             *gorm.DB
}

func NewSubmissionService(
	attempts repository.AttemptRepository,
	gw gateway.Gateway,
	scoreConverter ScoreConverterService,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		attempts:       attempts,
		gw:             gw,
		scoreConverter: scoreConverter,
		db:             db,
	}
}

func (s *submissionService) SubmitWriting(ctx context.Context, sub WritingSubmission) (*model.Attempt, *gateway.WritingEvaluation, error) {
	if !sub.TaskType.IsWriting() {
		return nil, nil, fmt.Errorf("task type %q is not a writing task", sub.TaskType)
	}
	if sub.UserContent == "" {
		return nil, nil, fmt.Errorf("submission has no content")
	}

	eval, err := s.gw.EvaluateWriting(ctx, gateway.WritingEvaluationRequest{
		TaskType:        sub.TaskType,
		UserContent:     sub.UserContent,
		QuestionContent: sub.QuestionContent,
		Keywords:        sub.Keywords,
	})
	if err != nil {
		// No Attempt on grading failure; the caller keeps the typed answer.
		return nil, nil, err
	}

	score := eval.Score
	attempt := &model.Attempt{
		UserID:          sub.UserID,
		TaskType:        sub.TaskType,
		QuestionID:      sub.QuestionID,
		UserContent:     sub.UserContent,
		QuestionContent: sub.QuestionContent,
		Score:           &score,
	}
	if err := s.persist(attempt, eval); err != nil {
		return nil, nil, err
	}
	return attempt, eval, nil
}

func (s *submissionService) SubmitReading(ctx context.Context, sub ReadingSubmission) (*model.Attempt, *gateway.ReadingEvaluation, error) {
	if sub.Test == nil || sub.Test.QuestionCount() == 0 {
		return nil, nil, fmt.Errorf("reading submission has no test content")
	}

	req := buildReadingEvaluationRequest(sub.Test, sub.Answers)
	eval, err := s.gw.EvaluateReading(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	// The gateway is expected to report the scaled score itself; recompute it
	// locally when the response left it out.
	if eval.ScaledScore == 0 && eval.TotalQuestions > 0 {
		scaled, convErr := s.scoreConverter.ConvertReadingScore(eval.CorrectAnswers, eval.TotalQuestions)
		if convErr != nil {
			log.Warn().Err(convErr).Msg("Could not derive scaled reading score")
		} else {
			eval.ScaledScore = scaled
		}
	}

	snapshot, err := sub.Test.Snapshot()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to snapshot working test: %w", err)
	}
	answersJSON, err := json.Marshal(answerKeyStrings(sub.Answers))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize answers: %w", err)
	}

	score := eval.ScaledScore
	attempt := &model.Attempt{
		UserID:          sub.UserID,
		TaskType:        model.ReadingTaskType(sub.Test.Part),
		UserContent:     string(answersJSON),
		QuestionContent: snapshot,
		Score:           &score,
	}
	if err := s.persist(attempt, eval); err != nil {
		return nil, nil, err
	}
	return attempt, eval, nil
}

func (s *submissionService) SubmitTranslation(ctx context.Context, sub TranslationSubmission) (*gateway.TranslationEvaluation, error) {
	if sub.UserTranslation == "" {
		return nil, fmt.Errorf("translation submission has no content")
	}
	return s.gw.EvaluateTranslation(ctx, gateway.TranslationEvaluationRequest{
		VietnamesePassage: sub.Passage,
		UserTranslation:   sub.UserTranslation,
		ProficiencyLevel:  sub.ProficiencyLevel,
		TargetVocabulary:  sub.TargetVocabulary,
	})
}

// persist serializes the opaque feedback payload and writes the attempt in
// one transaction, notifying live queries only after commit.
func (s *submissionService) persist(attempt *model.Attempt, feedback interface{}) error {
	payload, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("failed to serialize grading feedback: %w", err)
	}
	attempt.AIFeedback = string(payload)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.attempts.CreateTx(tx, attempt)
	})
	if err != nil {
		log.Error().Err(err).Uint("userID", attempt.UserID).Str("taskType", string(attempt.TaskType)).Msg("Failed to persist graded attempt")
		return err
	}
	s.attempts.NotifyCreated(attempt)

	log.Info().Uint("attemptID", attempt.ID).Str("taskType", string(attempt.TaskType)).Msg("Graded attempt recorded")
	return nil
}

// buildReadingEvaluationRequest pairs every question of the working test with
// the user's answer (empty string when unanswered).
func buildReadingEvaluationRequest(test *model.WorkingTest, answers map[int]string) gateway.ReadingEvaluationRequest {
	req := gateway.ReadingEvaluationRequest{Part: test.Part}

	toAnswer := func(q model.ReadingQuestion) gateway.ReadingAnswer {
		return gateway.ReadingAnswer{
			QuestionID:    q.ID,
			Sentence:      q.Sentence,
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			BlankNumber:   q.BlankNumber,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    answers[q.ID],
		}
	}

	if test.Part == 5 {
		for _, q := range test.Questions {
			req.Questions = append(req.Questions, toAnswer(q))
		}
		return req
	}

	for _, p := range test.Passages {
		pa := gateway.ReadingPassageAnswers{
			PassageID:    p.ID,
			PassageType:  p.PassageType,
			PassageText:  p.Text,
			PassageTexts: p.Texts,
		}
		for _, q := range p.Questions {
			pa.Questions = append(pa.Questions, toAnswer(q))
		}
		req.Passages = append(req.Passages, pa)
	}
	return req
}

func answerKeyStrings(answers map[int]string) map[string]string {
	out := make(map[string]string, len(answers))
	for id, choice := range answers {
		out[strconv.Itoa(id)] = choice
	}
	return out
}
