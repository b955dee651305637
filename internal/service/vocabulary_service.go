package service

import (
	"github.com/vdtri/toeicmate/internal/gateway"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/repository"
)

type VocabularyService interface {
	Add(vocab *model.Vocabulary) error
	// SaveNewWord stores a word surfaced by translation feedback.
	SaveNewWord(userID uint, word gateway.NewWord, proficiencyLevel string) (*model.Vocabulary, error)
	Delete(id uint) error
	List(userID uint, searchTerm string) ([]model.Vocabulary, error)
}

type vocabularyService struct {
	vocab repository.VocabularyRepository
}

func NewVocabularyService(vocab repository.VocabularyRepository) VocabularyService {
	return &vocabularyService{vocab: vocab}
}

func (s *vocabularyService) Add(vocab *model.Vocabulary) error {
	return s.vocab.Create(vocab)
}

func (s *vocabularyService) SaveNewWord(userID uint, word gateway.NewWord, proficiencyLevel string) (*model.Vocabulary, error) {
	entry := &model.Vocabulary{
		UserID:           userID,
		Vietnamese:       word.Vietnamese,
		English:          word.English,
		Context:          word.Context,
		ProficiencyLevel: proficiencyLevel,
	}
	if err := s.vocab.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *vocabularyService) Delete(id uint) error {
	return s.vocab.Delete(id)
}

func (s *vocabularyService) List(userID uint, searchTerm string) ([]model.Vocabulary, error) {
	return s.vocab.FindAllByUser(userID, repository.VocabularySearch{SearchTerm: searchTerm})
}
