package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdtri/toeicmate/internal/gateway"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/repository"
)

func newProgressFixture(t *testing.T, gw gateway.Gateway) (ProgressService, repository.AttemptRepository) {
	t.Helper()
	db, bus := testDB(t)
	attempts := repository.NewAttemptRepository(db, bus)
	return NewProgressService(attempts, gw), attempts
}

func seedScoredAttempt(t *testing.T, attempts repository.AttemptRepository, taskType model.TaskType, score float64, ts time.Time) {
	t.Helper()
	require.NoError(t, attempts.Create(&model.Attempt{
		UserID:      1,
		TaskType:    taskType,
		UserContent: "answer",
		Score:       &score,
		Timestamp:   ts,
	}))
}

func TestSummaryAggregatesByTaskType(t *testing.T) {
	svc, attempts := newProgressFixture(t, &fakeGateway{})

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	seedScoredAttempt(t, attempts, model.TaskEmailResponse, 3, base)
	seedScoredAttempt(t, attempts, model.TaskEmailResponse, 4, base.Add(time.Hour))
	seedScoredAttempt(t, attempts, model.TaskReadingPart5, 300, base.Add(2*time.Hour))

	summary, err := svc.Summary(1, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalAttempts)
	assert.Len(t, summary.Recent, 2)
	assert.Equal(t, model.TaskReadingPart5, summary.Recent[0].TaskType)

	byType := map[model.TaskType]TaskTypeStats{}
	for _, st := range summary.ByTaskType {
		byType[st.TaskType] = st
	}
	require.Contains(t, byType, model.TaskEmailResponse)
	assert.Equal(t, 2, byType[model.TaskEmailResponse].Attempts)
	assert.InDelta(t, 3.5, byType[model.TaskEmailResponse].AverageScore, 0.001)
	require.NotNil(t, byType[model.TaskEmailResponse].LatestScore)
	assert.Equal(t, 4.0, *byType[model.TaskEmailResponse].LatestScore)
}

func TestSummaryEmptyHistory(t *testing.T) {
	svc, _ := newProgressFixture(t, &fakeGateway{})

	summary, err := svc.Summary(1, 0)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalAttempts)
	assert.Empty(t, summary.ByTaskType)
}

func TestAnalyzeSendsCompactDigest(t *testing.T) {
	var received string
	gw := &fakeGateway{
		analyzeProgress: func(_ context.Context, historyJSON string) (*gateway.ProgressAnalysis, error) {
			received = historyJSON
			return &gateway.ProgressAnalysis{Summary: "improving"}, nil
		},
	}
	svc, attempts := newProgressFixture(t, gw)
	seedScoredAttempt(t, attempts, model.TaskOpinionEssay, 4, time.Now())

	analysis, err := svc.Analyze(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "improving", analysis.Summary)

	var digest []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(received), &digest))
	require.Len(t, digest, 1)
	assert.Equal(t, "task3", digest[0]["task_type"])
	// Bulky grading payloads stay out of the digest.
	assert.NotContains(t, digest[0], "ai_feedback")
}

func TestAnalyzeWithoutHistoryFails(t *testing.T) {
	svc, _ := newProgressFixture(t, &fakeGateway{})
	_, err := svc.Analyze(context.Background(), 1)
	assert.Error(t, err)
}
