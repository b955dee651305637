package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vdtri/toeicmate/config"
	"github.com/vdtri/toeicmate/internal/gateway"
	"github.com/vdtri/toeicmate/internal/model"
)

// ProgressFunc receives a copy of the working test after every merged round
// so callers can render partial content before generation finishes.
type ProgressFunc func(round, totalRounds int, test *model.WorkingTest)

// ReadingBuilderService drives the multi-round generation of one reading test
// and merges the batches into a single coherent WorkingTest.
type ReadingBuilderService interface {
	// Build runs the part's configured number of rounds strictly in order,
	// waiting the configured delay between consecutive rounds. Each round's
	// result is merged by appending; identifiers coming from the gateway are
	// assumed unique across rounds and are never renumbered.
	//
	// On any round failure the operation fails as a whole, but the returned
	// WorkingTest still carries everything merged before the failure, so the
	// caller may keep displaying it. Cancellation via ctx behaves the same
	// way: merged content stays valid.
	Build(ctx context.Context, part int, topic string, onProgress ProgressFunc) (*model.WorkingTest, error)
}

type readingBuilderService struct {
	gw    gateway.Gateway
	clock Clock
	cfg   *config.Config
}

func NewReadingBuilderService(gw gateway.Gateway, clock Clock, cfg *config.Config) ReadingBuilderService {
	return &readingBuilderService{gw: gw, clock: clock, cfg: cfg}
}

func (s *readingBuilderService) rounds(part int) int {
	switch part {
	case 5:
		return s.cfg.Reading.RoundsPart5
	case 6:
		return 1
	case 7:
		return s.cfg.Reading.RoundsPart7
	}
	return 0
}

func (s *readingBuilderService) Build(ctx context.Context, part int, topic string, onProgress ProgressFunc) (*model.WorkingTest, error) {
	totalRounds := s.rounds(part)
	if totalRounds <= 0 {
		return nil, fmt.Errorf("unsupported reading part %d", part)
	}

	test := &model.WorkingTest{Part: part}

	for round := 1; round <= totalRounds; round++ {
		if err := ctx.Err(); err != nil {
			return test, err
		}

		log.Info().Int("part", part).Int("round", round).Int("totalRounds", totalRounds).Msg("Requesting reading generation round")
		batch, err := s.gw.GenerateReadingBatch(ctx, part, topic, round)
		if err != nil {
			log.Error().Err(err).Int("part", part).Int("round", round).Msg("Reading generation round failed")
			return test, fmt.Errorf("generation round %d/%d failed: %w", round, totalRounds, err)
		}

		// Merge before anything else: round k+1 is never issued until round
		// k's content is part of the working test.
		test.Merge(batch)
		if onProgress != nil {
			onProgress(round, totalRounds, test.Clone())
		}

		if round < totalRounds {
			log.Debug().Dur("delay", s.cfg.Reading.BatchDelay).Msg("Waiting before next generation round")
			if err := s.clock.Sleep(ctx, s.cfg.Reading.BatchDelay); err != nil {
				return test, err
			}
		}
	}

	log.Info().Int("part", part).Int("questions", test.QuestionCount()).Msg("Reading test generation complete")
	return test, nil
}
