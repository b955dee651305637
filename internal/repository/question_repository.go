package repository

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/store"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	// BulkCreate validates each record independently and imports the valid
	// subset, returning how many were stored. It fails with ValidationError
	// (and imports nothing) only when no record validates. Incoming IDs are
	// dropped so the store assigns fresh identifiers.
	BulkCreate(questions []model.Question) (int, error)
	FindByID(id uint) (*model.Question, error)
	FindAll() ([]model.Question, error)
	FindByType(taskType model.TaskType) ([]model.Question, error)
	Delete(id uint) error
	DeleteAll() error
}

type questionRepository struct {
	db  *gorm.DB
	bus *store.Bus
}

func NewQuestionRepository(db *gorm.DB, bus *store.Bus) QuestionRepository {
	return &questionRepository{db: db, bus: bus}
}

// ValidateQuestion checks the closed enums and required fields shared by the
// single and bulk create paths.
func ValidateQuestion(q *model.Question) error {
	if !q.Type.IsWriting() {
		return &apperr.ValidationError{Field: "type", Reason: "must be task1, task2 or task3"}
	}
	if q.Content == "" {
		return &apperr.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if q.Level != "" && !q.Level.Valid() {
		return &apperr.ValidationError{Field: "level", Reason: "unrecognized proficiency level"}
	}
	return nil
}

func (r *questionRepository) Create(question *model.Question) error {
	if err := ValidateQuestion(question); err != nil {
		return err
	}
	if err := r.db.Create(question).Error; err != nil {
		return apperr.Storage("create question", err)
	}
	r.bus.Publish(store.CollectionQuestions)
	return nil
}

func (r *questionRepository) BulkCreate(questions []model.Question) (int, error) {
	valid := lo.Filter(questions, func(q model.Question, _ int) bool {
		if err := ValidateQuestion(&q); err != nil {
			log.Warn().Err(err).Str("type", string(q.Type)).Msg("Skipping invalid question in bulk import")
			return false
		}
		return true
	})
	if len(valid) == 0 {
		return 0, &apperr.ValidationError{Reason: "no valid questions in batch"}
	}

	// Fresh identifiers: imported IDs would collide with auto-assigned ones.
	records := lo.Map(valid, func(q model.Question, _ int) model.Question {
		q.ID = 0
		return q
	})

	if err := r.db.Create(&records).Error; err != nil {
		return 0, apperr.Storage("bulk create questions", err)
	}
	r.bus.Publish(store.CollectionQuestions)
	return len(records), nil
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage("find question", err)
	}
	return &question, nil
}

func (r *questionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, apperr.Storage("list questions", err)
	}
	return questions, nil
}

func (r *questionRepository) FindByType(taskType model.TaskType) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("type = ?", taskType).Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, apperr.Storage("list questions by type", err)
	}
	return questions, nil
}

func (r *questionRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Question{}, id).Error; err != nil {
		return apperr.Storage("delete question", err)
	}
	r.bus.Publish(store.CollectionQuestions)
	return nil
}

func (r *questionRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&model.Question{}).Error; err != nil {
		return apperr.Storage("clear questions", err)
	}
	r.bus.Publish(store.CollectionQuestions)
	return nil
}
