package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/gateway"
)

func TestGeneratePassagesValidatesLength(t *testing.T) {
	svc := NewTranslationService(&fakeGateway{})

	var validationErr *apperr.ValidationError
	_, err := svc.GeneratePassages(context.Background(), "intermediate", "100-200", 5)
	assert.ErrorAs(t, err, &validationErr)
}

func TestGeneratePassagesDefaultsCount(t *testing.T) {
	gw := &fakeGateway{
		generateTranslation: func(_ context.Context, level, length string, count int) ([]gateway.VietnamesePassage, error) {
			assert.Equal(t, "basic", level)
			assert.Equal(t, "20-30", length)
			assert.Equal(t, 10, count)
			return []gateway.VietnamesePassage{{ID: 1, Vietnamese: "Xin chào quý khách."}}, nil
		},
	}
	svc := NewTranslationService(gw)

	passages, err := svc.GeneratePassages(context.Background(), "basic", "20-30", 0)
	require.NoError(t, err)
	assert.Len(t, passages, 1)
}
