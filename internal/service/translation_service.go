package service

import (
	"context"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/gateway"
)

var translationLengths = map[string]bool{"20-30": true, "40-50": true, "60-80": true}

// TranslationService generates Vietnamese passages for translation practice.
// Grading goes through SubmissionService.SubmitTranslation.
type TranslationService interface {
	GeneratePassages(ctx context.Context, proficiencyLevel, passageLength string, count int) ([]gateway.VietnamesePassage, error)
}

type translationService struct {
	gw gateway.Gateway
}

func NewTranslationService(gw gateway.Gateway) TranslationService {
	return &translationService{gw: gw}
}

func (s *translationService) GeneratePassages(ctx context.Context, proficiencyLevel, passageLength string, count int) ([]gateway.VietnamesePassage, error) {
	if !translationLengths[passageLength] {
		return nil, &apperr.ValidationError{Field: "passage_length", Reason: "must be 20-30, 40-50 or 60-80"}
	}
	if count <= 0 {
		count = 10
	}
	return s.gw.GenerateTranslationPassages(ctx, proficiencyLevel, passageLength, count)
}
