package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/gateway"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/repository"
)

// QuestionService manages the question library: explicit saves, AI
// generation, and bulk import from a user-supplied JSON file.
type QuestionService interface {
	Save(question *model.Question) error
	List(taskType model.TaskType) ([]model.Question, error)
	Get(id uint) (*model.Question, error)
	Delete(id uint) error
	// Generate asks the gateway for a fresh set of writing questions. The
	// results are returned for immediate use; saving any of them to the
	// library stays an explicit user action.
	Generate(ctx context.Context, topic string) ([]gateway.GeneratedQuestion, error)
	// ImportJSON reads a flat JSON array of question-shaped objects and
	// imports the valid subset, reporting how many records were stored.
	ImportJSON(raw []byte) (int, error)
}

type questionService struct {
	questions repository.QuestionRepository
	gw        gateway.Gateway
}

func NewQuestionService(questions repository.QuestionRepository, gw gateway.Gateway) QuestionService {
	return &questionService{questions: questions, gw: gw}
}

func (s *questionService) Save(question *model.Question) error {
	return s.questions.Create(question)
}

func (s *questionService) List(taskType model.TaskType) ([]model.Question, error) {
	if taskType == "" {
		return s.questions.FindAll()
	}
	if !taskType.IsWriting() {
		return nil, &apperr.ValidationError{Field: "type", Reason: "question library holds writing tasks only"}
	}
	return s.questions.FindByType(taskType)
}

func (s *questionService) Get(id uint) (*model.Question, error) {
	return s.questions.FindByID(id)
}

func (s *questionService) Delete(id uint) error {
	return s.questions.Delete(id)
}

func (s *questionService) Generate(ctx context.Context, topic string) ([]gateway.GeneratedQuestion, error) {
	generated, err := s.gw.GenerateWritingQuestions(ctx, topic)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Question generation failed")
		return nil, err
	}
	return generated, nil
}

func (s *questionService) ImportJSON(raw []byte) (int, error) {
	var incoming []model.Question
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return 0, &apperr.ValidationError{Reason: fmt.Sprintf("file is not a JSON array of questions: %v", err)}
	}
	if len(incoming) == 0 {
		return 0, &apperr.ValidationError{Reason: "file contains no questions"}
	}

	count, err := s.questions.BulkCreate(incoming)
	if err != nil {
		return 0, err
	}
	log.Info().Int("imported", count).Int("supplied", len(incoming)).Msg("Question bank import finished")
	return count, nil
}
