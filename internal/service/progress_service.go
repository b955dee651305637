package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/vdtri/toeicmate/internal/gateway"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/repository"
)

// TaskTypeStats aggregates a user's history for one task family.
type TaskTypeStats struct {
	TaskType     model.TaskType `json:"task_type"`
	Attempts     int            `json:"attempts"`
	AverageScore float64        `json:"average_score"`
	LatestScore  *float64       `json:"latest_score,omitempty"`
}

// ProgressSummary is the dashboard aggregation of recent history.
type ProgressSummary struct {
	TotalAttempts int             `json:"total_attempts"`
	ByTaskType    []TaskTypeStats `json:"by_task_type"`
	Recent        []model.Attempt `json:"recent"`
}

// attemptDigest is the compact per-attempt shape sent to the AI analyzer;
// full feedback payloads would blow up the prompt for no benefit.
type attemptDigest struct {
	TaskType  model.TaskType `json:"task_type"`
	Score     *float64       `json:"score,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type ProgressService interface {
	Summary(userID uint, recentLimit int) (*ProgressSummary, error)
	// Analyze sends a digest of the user's recent attempts to the gateway
	// for an AI progress report.
	Analyze(ctx context.Context, userID uint) (*gateway.ProgressAnalysis, error)
}

type progressService struct {
	attempts repository.AttemptRepository
	gw       gateway.Gateway
}

func NewProgressService(attempts repository.AttemptRepository, gw gateway.Gateway) ProgressService {
	return &progressService{attempts: attempts, gw: gw}
}

func (s *progressService) Summary(userID uint, recentLimit int) (*ProgressSummary, error) {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	all, err := s.attempts.FindAllByUser(userID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt history: %w", err)
	}

	grouped := lo.GroupBy(all, func(a model.Attempt) model.TaskType { return a.TaskType })
	stats := make([]TaskTypeStats, 0, len(grouped))
	for taskType, attempts := range grouped {
		scored := lo.Filter(attempts, func(a model.Attempt, _ int) bool { return a.Score != nil })
		st := TaskTypeStats{TaskType: taskType, Attempts: len(attempts)}
		if len(scored) > 0 {
			st.AverageScore = lo.SumBy(scored, func(a model.Attempt) float64 { return *a.Score }) / float64(len(scored))
			st.LatestScore = scored[0].Score // attempts arrive sorted newest first
		}
		stats = append(stats, st)
	}

	recent := all
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &ProgressSummary{
		TotalAttempts: len(all),
		ByTaskType:    stats,
		Recent:        recent,
	}, nil
}

func (s *progressService) Analyze(ctx context.Context, userID uint) (*gateway.ProgressAnalysis, error) {
	attempts, err := s.attempts.FindAllByUser(userID, repository.ListOptions{Limit: 30})
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt history: %w", err)
	}
	if len(attempts) == 0 {
		return nil, fmt.Errorf("no practice history to analyze")
	}

	digest := lo.Map(attempts, func(a model.Attempt, _ int) attemptDigest {
		return attemptDigest{TaskType: a.TaskType, Score: a.Score, Timestamp: a.Timestamp}
	})
	payload, err := json.Marshal(digest)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize history digest: %w", err)
	}

	return s.gw.AnalyzeProgress(ctx, string(payload))
}
