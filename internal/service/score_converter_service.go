package service

import (
	"fmt"
	"math"
)

// The TOEIC Reading section is reported on a 5-495 scale. Practice tests here
// are shorter than the official 100 questions, so conversion works from the
// fraction answered correctly.
const (
	MinScaledReadingScore float64 = 5.0
	MaxScaledReadingScore float64 = 495.0
)

type ScoreConverterService interface {
	// ConvertReadingScore maps a correct/total ratio onto the 5-495 TOEIC
	// reading scale, rounded to the nearest multiple of 5 as official scores
	// are.
	ConvertReadingScore(correct, total int) (float64, error)
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

func (s *scoreConverterServiceImpl) ConvertReadingScore(correct, total int) (float64, error) {
	if total <= 0 {
		return 0, fmt.Errorf("total question count must be positive, got %d", total)
	}
	if correct < 0 || correct > total {
		return 0, fmt.Errorf("correct count %d out of range 0-%d", correct, total)
	}

	ratio := float64(correct) / float64(total)

	// Piecewise approximation of the official conversion table: the scale is
	// compressed at the bottom and stretched near the top.
	var scaled float64
	switch {
	case ratio <= 0.10:
		scaled = MinScaledReadingScore + ratio*300 // 5-35
	case ratio <= 0.30:
		scaled = 35 + (ratio-0.10)*450 // 35-125
	case ratio <= 0.60:
		scaled = 125 + (ratio-0.30)*600 // 125-305
	case ratio <= 0.85:
		scaled = 305 + (ratio-0.60)*520 // 305-435
	default:
		scaled = 435 + (ratio-0.85)*400 // 435-495
	}

	if scaled > MaxScaledReadingScore {
		scaled = MaxScaledReadingScore
	}
	if scaled < MinScaledReadingScore {
		scaled = MinScaledReadingScore
	}
	return math.Round(scaled/5.0) * 5.0, nil
}
