package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertReadingScoreBounds(t *testing.T) {
	svc := NewScoreConverterService()

	lowest, err := svc.ConvertReadingScore(0, 30)
	require.NoError(t, err)
	assert.Equal(t, MinScaledReadingScore, lowest)

	highest, err := svc.ConvertReadingScore(30, 30)
	require.NoError(t, err)
	assert.Equal(t, MaxScaledReadingScore, highest)
}

func TestConvertReadingScoreMonotonic(t *testing.T) {
	svc := NewScoreConverterService()

	previous := 0.0
	for correct := 0; correct <= 30; correct++ {
		score, err := svc.ConvertReadingScore(correct, 30)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, previous, "score dropped at %d correct", correct)
		previous = score
	}
}

func TestConvertReadingScoreMultipleOfFive(t *testing.T) {
	svc := NewScoreConverterService()

	for correct := 0; correct <= 30; correct++ {
		score, err := svc.ConvertReadingScore(correct, 30)
		require.NoError(t, err)
		assert.Zero(t, int(score)%5, "score %v at %d correct not a multiple of 5", score, correct)
	}
}

func TestConvertReadingScoreInvalidInput(t *testing.T) {
	svc := NewScoreConverterService()

	_, err := svc.ConvertReadingScore(1, 0)
	assert.Error(t, err)

	_, err = svc.ConvertReadingScore(-1, 10)
	assert.Error(t, err)

	_, err = svc.ConvertReadingScore(11, 10)
	assert.Error(t, err)
}
