package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/store"
)

// VocabularySearch filters a user's vocabulary list. SearchTerm matches
// case-insensitively as a substring of either language field.
type VocabularySearch struct {
	SearchTerm string
}

type VocabularyRepository interface {
	Create(vocab *model.Vocabulary) error
	Delete(id uint) error
	FindAllByUser(userID uint, search VocabularySearch) ([]model.Vocabulary, error)
}

type vocabularyRepository struct {
	db  *gorm.DB
	bus *store.Bus
}

func NewVocabularyRepository(db *gorm.DB, bus *store.Bus) VocabularyRepository {
	return &vocabularyRepository{db: db, bus: bus}
}

func (r *vocabularyRepository) Create(vocab *model.Vocabulary) error {
	if strings.TrimSpace(vocab.Vietnamese) == "" {
		return &apperr.ValidationError{Field: "vietnamese", Reason: "must not be empty"}
	}
	if strings.TrimSpace(vocab.English) == "" {
		return &apperr.ValidationError{Field: "english", Reason: "must not be empty"}
	}
	if vocab.UserID == 0 {
		return &apperr.ValidationError{Field: "user_id", Reason: "vocabulary must belong to a user"}
	}
	if err := r.db.Create(vocab).Error; err != nil {
		return apperr.Storage("create vocabulary", err)
	}
	r.bus.Publish(store.CollectionVocabulary, store.UserKey(vocab.UserID))
	return nil
}

func (r *vocabularyRepository) Delete(id uint) error {
	var vocab model.Vocabulary
	err := r.db.First(&vocab, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return apperr.Storage("find vocabulary", err)
	}
	if err := r.db.Delete(&model.Vocabulary{}, id).Error; err != nil {
		return apperr.Storage("delete vocabulary", err)
	}
	r.bus.Publish(store.CollectionVocabulary, store.UserKey(vocab.UserID))
	return nil
}

func (r *vocabularyRepository) FindAllByUser(userID uint, search VocabularySearch) ([]model.Vocabulary, error) {
	query := r.db.Where("user_id = ?", userID).Order("added_at DESC, id DESC")
	if term := strings.TrimSpace(search.SearchTerm); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(vietnamese) LIKE ? OR LOWER(english) LIKE ?", pattern, pattern)
	}
	var entries []model.Vocabulary
	if err := query.Find(&entries).Error; err != nil {
		return nil, apperr.Storage("list vocabulary", err)
	}
	return entries, nil
}
