package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
)

func TestVocabularyCreateValidation(t *testing.T) {
	db, bus := testDB(t)
	repo := NewVocabularyRepository(db, bus)

	var validationErr *apperr.ValidationError
	assert.ErrorAs(t, repo.Create(&model.Vocabulary{UserID: 1, English: "meeting"}), &validationErr)
	assert.ErrorAs(t, repo.Create(&model.Vocabulary{UserID: 1, Vietnamese: "cuộc họp"}), &validationErr)
	assert.ErrorAs(t, repo.Create(&model.Vocabulary{Vietnamese: "cuộc họp", English: "meeting"}), &validationErr)
}

func TestVocabularySearchMatchesEitherLanguage(t *testing.T) {
	db, bus := testDB(t)
	repo := NewVocabularyRepository(db, bus)

	require.NoError(t, repo.Create(&model.Vocabulary{UserID: 1, Vietnamese: "hợp đồng", English: "contract"}))
	require.NoError(t, repo.Create(&model.Vocabulary{UserID: 1, Vietnamese: "cuộc họp", English: "meeting"}))
	require.NoError(t, repo.Create(&model.Vocabulary{UserID: 2, Vietnamese: "hợp đồng", English: "contract"}))

	byEnglish, err := repo.FindAllByUser(1, VocabularySearch{SearchTerm: "CONTRACT"})
	require.NoError(t, err)
	require.Len(t, byEnglish, 1)
	assert.Equal(t, "hợp đồng", byEnglish[0].Vietnamese)

	byVietnamese, err := repo.FindAllByUser(1, VocabularySearch{SearchTerm: "cuộc"})
	require.NoError(t, err)
	require.Len(t, byVietnamese, 1)
	assert.Equal(t, "meeting", byVietnamese[0].English)

	all, err := repo.FindAllByUser(1, VocabularySearch{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestVocabularyDelete(t *testing.T) {
	db, bus := testDB(t)
	repo := NewVocabularyRepository(db, bus)

	entry := &model.Vocabulary{UserID: 1, Vietnamese: "báo cáo", English: "report"}
	require.NoError(t, repo.Create(entry))
	require.NoError(t, repo.Delete(entry.ID))

	remaining, err := repo.FindAllByUser(1, VocabularySearch{})
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, repo.Delete(entry.ID), apperr.ErrNotFound)
}
