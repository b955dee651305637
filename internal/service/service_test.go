package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vdtri/toeicmate/database"
	"github.com/vdtri/toeicmate/internal/gateway"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/store"
)

func testDB(t *testing.T) (*gorm.DB, *store.Bus) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db, store.NewBus()
}

// fakeGateway lets each test stub exactly the calls it exercises; everything
// else fails loudly.
type fakeGateway struct {
	generateWriting     func(ctx context.Context, topic string) ([]gateway.GeneratedQuestion, error)
	generateReading     func(ctx context.Context, part int, topic string, batchNumber int) (*model.ReadingBatch, error)
	evaluateWriting     func(ctx context.Context, req gateway.WritingEvaluationRequest) (*gateway.WritingEvaluation, error)
	evaluateReading     func(ctx context.Context, req gateway.ReadingEvaluationRequest) (*gateway.ReadingEvaluation, error)
	generateTranslation func(ctx context.Context, level, length string, count int) ([]gateway.VietnamesePassage, error)
	evaluateTranslation func(ctx context.Context, req gateway.TranslationEvaluationRequest) (*gateway.TranslationEvaluation, error)
	analyzeProgress     func(ctx context.Context, historyJSON string) (*gateway.ProgressAnalysis, error)
}

func (f *fakeGateway) GenerateWritingQuestions(ctx context.Context, topic string) ([]gateway.GeneratedQuestion, error) {
	if f.generateWriting == nil {
		panic("unexpected GenerateWritingQuestions call")
	}
	return f.generateWriting(ctx, topic)
}

func (f *fakeGateway) GenerateReadingBatch(ctx context.Context, part int, topic string, batchNumber int) (*model.ReadingBatch, error) {
	if f.generateReading == nil {
		panic("unexpected GenerateReadingBatch call")
	}
	return f.generateReading(ctx, part, topic, batchNumber)
}

func (f *fakeGateway) EvaluateWriting(ctx context.Context, req gateway.WritingEvaluationRequest) (*gateway.WritingEvaluation, error) {
	if f.evaluateWriting == nil {
		panic("unexpected EvaluateWriting call")
	}
	return f.evaluateWriting(ctx, req)
}

func (f *fakeGateway) EvaluateReading(ctx context.Context, req gateway.ReadingEvaluationRequest) (*gateway.ReadingEvaluation, error) {
	if f.evaluateReading == nil {
		panic("unexpected EvaluateReading call")
	}
	return f.evaluateReading(ctx, req)
}

func (f *fakeGateway) GenerateTranslationPassages(ctx context.Context, level, length string, count int) ([]gateway.VietnamesePassage, error) {
	if f.generateTranslation == nil {
		panic("unexpected GenerateTranslationPassages call")
	}
	return f.generateTranslation(ctx, level, length, count)
}

func (f *fakeGateway) EvaluateTranslation(ctx context.Context, req gateway.TranslationEvaluationRequest) (*gateway.TranslationEvaluation, error) {
	if f.evaluateTranslation == nil {
		panic("unexpected EvaluateTranslation call")
	}
	return f.evaluateTranslation(ctx, req)
}

func (f *fakeGateway) AnalyzeProgress(ctx context.Context, historyJSON string) (*gateway.ProgressAnalysis, error) {
	if f.analyzeProgress == nil {
		panic("unexpected AnalyzeProgress call")
	}
	return f.analyzeProgress(ctx, historyJSON)
}

// fakeClock records requested sleeps and returns immediately.
type fakeClock struct {
	slept []time.Duration
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.slept = append(c.slept, d)
	return nil
}
