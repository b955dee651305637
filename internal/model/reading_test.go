package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingTestMergeAppendsWithoutRenumbering(t *testing.T) {
	test := &WorkingTest{Part: 5}

	test.Merge(&ReadingBatch{Part: 5, BatchNumber: 1, Questions: []ReadingQuestion{
		{ID: 1, Sentence: "The report ___ yesterday."},
		{ID: 2, Sentence: "She ___ the meeting."},
	}})
	test.Merge(&ReadingBatch{Part: 5, BatchNumber: 2, Questions: []ReadingQuestion{
		{ID: 101, Sentence: "They ___ the contract."},
	}})

	require.Equal(t, 3, test.QuestionCount())
	assert.Equal(t, []int{1, 2, 101}, []int{test.Questions[0].ID, test.Questions[1].ID, test.Questions[2].ID})
}

func TestWorkingTestMergePassages(t *testing.T) {
	test := &WorkingTest{Part: 7}

	test.Merge(&ReadingBatch{Part: 7, Passages: []ReadingPassage{
		{ID: 1, PassageType: "single", Questions: []ReadingQuestion{{ID: 1}, {ID: 2}}},
	}})
	test.Merge(&ReadingBatch{Part: 7, Passages: []ReadingPassage{
		{ID: 101, PassageType: "double", Questions: []ReadingQuestion{{ID: 101}, {ID: 102}, {ID: 103}}},
	}})

	require.Len(t, test.Passages, 2)
	assert.Equal(t, 5, test.QuestionCount())
}

func TestWorkingTestMergeLegacySinglePassage(t *testing.T) {
	test := &WorkingTest{Part: 6}

	test.Merge(&ReadingBatch{Part: 6, Passage: &ReadingPassage{
		ID:        1,
		Type:      "Email",
		Questions: []ReadingQuestion{{ID: 1, Kind: "word"}, {ID: 2, Kind: "sentence"}},
	}})

	require.Len(t, test.Passages, 1)
	assert.Equal(t, "Email", test.Passages[0].Type)
	assert.Equal(t, 2, test.QuestionCount())
}

func TestWorkingTestMergeNilBatchIsNoop(t *testing.T) {
	test := &WorkingTest{Part: 5, Questions: []ReadingQuestion{{ID: 1}}}
	test.Merge(nil)
	assert.Equal(t, 1, test.QuestionCount())
}

func TestWorkingTestCloneIsIndependent(t *testing.T) {
	test := &WorkingTest{Part: 5, Questions: []ReadingQuestion{{ID: 1}}}

	clone := test.Clone()
	test.Merge(&ReadingBatch{Questions: []ReadingQuestion{{ID: 2}}})

	assert.Equal(t, 1, clone.QuestionCount())
	assert.Equal(t, 2, test.QuestionCount())
}

func TestWorkingTestSnapshotRoundTrip(t *testing.T) {
	test := &WorkingTest{
		Part: 7,
		Passages: []ReadingPassage{
			{ID: 1, PassageType: "single", Text: "To all staff...", Questions: []ReadingQuestion{
				{ID: 1, QuestionText: "What is the purpose?", QuestionType: "purpose", Options: []string{"(A)", "(B)", "(C)", "(D)"}, CorrectAnswer: "(A)"},
			}},
		},
	}

	snapshot, err := test.Snapshot()
	require.NoError(t, err)

	restored, err := ParseWorkingTest(snapshot)
	require.NoError(t, err)
	assert.Equal(t, test, restored)
}

func TestParseWorkingTestRejectsGarbage(t *testing.T) {
	_, err := ParseWorkingTest("{not json")
	assert.Error(t, err)
}
