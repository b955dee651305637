package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/vdtri/toeicmate/internal/dto"
	"github.com/vdtri/toeicmate/internal/gateway"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/service"
	"github.com/vdtri/toeicmate/internal/session"
)

type ReadingController struct {
	builder            service.ReadingBuilderService
	submissionService  service.SubmissionService
	translationService service.TranslationService
	sess               *session.Store
}

func NewReadingController(
	builder service.ReadingBuilderService,
	submissionService service.SubmissionService,
	translationService service.TranslationService,
	sess *session.Store,
) *ReadingController {
	return &ReadingController{
		builder:            builder,
		submissionService:  submissionService,
		translationService: translationService,
		sess:               sess,
	}
}

// Generate godoc
// @Summary Generate a reading test round by round
// @Description Streams one SSE frame per completed generation round; each frame carries the full test merged so far. Disconnecting cancels the remaining rounds but already streamed content stays usable.
// @Tags Reading
// @Accept json
// @Produce text/event-stream
// @Param request body dto.GenerateReadingRequest true "Reading part (5, 6 or 7) and optional topic"
// @Success 200 {object} dto.ReadingProgressDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /reading/generate [post]
func (c *ReadingController) Generate(ctx *gin.Context) {
	var req dto.GenerateReadingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if req.Part < 5 || req.Part > 7 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "part must be 5, 6 or 7"})
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Writer.Flush()

	onProgress := func(round, totalRounds int, test *model.WorkingTest) {
		ctx.SSEvent("progress", dto.ReadingProgressDTO{
			Round:       round,
			TotalRounds: totalRounds,
			Test:        test,
		})
		ctx.Writer.Flush()
	}

	test, err := c.builder.Build(ctx.Request.Context(), req.Part, req.Topic, onProgress)
	if err != nil {
		log.Error().Err(err).Int("part", req.Part).Msg("Reading test generation failed")
		ctx.SSEvent("error", dto.ReadingProgressDTO{Error: err.Error(), Test: test})
		ctx.Writer.Flush()
		return
	}

	ctx.SSEvent("done", dto.ReadingProgressDTO{Done: true, Test: test})
	ctx.Writer.Flush()
}

// Submit godoc
// @Summary Submit a completed reading test for grading
// @Description Grades the answers via the AI service and, on success, records exactly one attempt with the scaled score. On grading failure nothing is recorded.
// @Tags Reading
// @Accept json
// @Produce json
// @Param submission body dto.SubmitReadingRequest true "Test content and answers"
// @Success 200 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /reading/submit [post]
func (c *ReadingController) Submit(ctx *gin.Context) {
	user, ok := requireUser(ctx, c.sess)
	if !ok {
		return
	}

	var req dto.SubmitReadingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	attempt, eval, err := c.submissionService.SubmitReading(ctx.Request.Context(), service.ReadingSubmission{
		UserID:  user.ID,
		Test:    req.Test,
		Answers: req.Answers,
	})
	if err != nil {
		log.Error().Err(err).Int("part", req.Test.Part).Msg("Reading submission failed")
		respondError(ctx, err)
		return
	}

	log.Info().Uint("attemptID", attempt.ID).Int("correct", eval.CorrectAnswers).Int("total", eval.TotalQuestions).Msg("Reading test graded")
	ctx.JSON(http.StatusOK, dto.SubmitResultDTO{AttemptID: attempt.ID, Attempt: toAttemptDTO(attempt)})
}

// GenerateTranslation godoc
// @Summary Generate Vietnamese passages for translation practice
// @Tags Translation
// @Accept json
// @Produce json
// @Param request body dto.GenerateTranslationRequest true "Proficiency level and passage length"
// @Success 200 {array} gateway.VietnamesePassage
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /translation/generate [post]
func (c *ReadingController) GenerateTranslation(ctx *gin.Context) {
	var req dto.GenerateTranslationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	passages, err := c.translationService.GeneratePassages(ctx.Request.Context(), req.ProficiencyLevel, req.PassageLength, req.Count)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, passages)
}

// SubmitTranslation godoc
// @Summary Submit a translation for grading
// @Description Returns the evaluation directly. Translation results are not recorded in the attempt history; new words from the feedback are saved separately through the vocabulary endpoints.
// @Tags Translation
// @Accept json
// @Produce json
// @Param submission body dto.SubmitTranslationRequest true "Passage and the user's translation"
// @Success 200 {object} gateway.TranslationEvaluation
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /translation/submit [post]
func (c *ReadingController) SubmitTranslation(ctx *gin.Context) {
	user, ok := requireUser(ctx, c.sess)
	if !ok {
		return
	}

	var req dto.SubmitTranslationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	eval, err := c.submissionService.SubmitTranslation(ctx.Request.Context(), service.TranslationSubmission{
		UserID:           user.ID,
		Passage:          req.Passage,
		UserTranslation:  req.UserTranslation,
		ProficiencyLevel: req.ProficiencyLevel,
		TargetVocabulary: lo.Map(req.TargetVocabulary, func(v dto.TargetVocabularyDTO, _ int) gateway.TargetVocabulary {
			return gateway.TargetVocabulary{Vietnamese: v.Vietnamese, English: v.English}
		}),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, eval)
}
