package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/vdtri/toeicmate/internal/dto"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/service"
	"github.com/vdtri/toeicmate/internal/session"
)

type WritingController struct {
	questionService   service.QuestionService
	submissionService service.SubmissionService
	sess              *session.Store
}

func NewWritingController(
	questionService service.QuestionService,
	submissionService service.SubmissionService,
	sess *session.Store,
) *WritingController {
	return &WritingController{
		questionService:   questionService,
		submissionService: submissionService,
		sess:              sess,
	}
}

// Generate godoc
// @Summary Generate a fresh set of writing questions
// @Tags Writing
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionsRequest true "Optional topic hint"
// @Success 200 {array} dto.GeneratedQuestionDTO
// @Failure 502 {object} dto.ErrorResponse
// @Router /writing/generate [post]
func (c *WritingController) Generate(ctx *gin.Context) {
	var req dto.GenerateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	generated, err := c.questionService.Generate(ctx.Request.Context(), req.Topic)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var out []dto.GeneratedQuestionDTO
	copier.Copy(&out, &generated)
	ctx.JSON(http.StatusOK, out)
}

// Submit godoc
// @Summary Submit a writing answer for grading
// @Description Grades the answer via the AI service and, on success, records exactly one attempt. On grading failure nothing is recorded and the answer can be resubmitted.
// @Tags Writing
// @Accept json
// @Produce json
// @Param submission body dto.SubmitWritingRequest true "Finalized answer"
// @Success 200 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /writing/submit [post]
func (c *WritingController) Submit(ctx *gin.Context) {
	user, ok := requireUser(ctx, c.sess)
	if !ok {
		return
	}

	var req dto.SubmitWritingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	taskType := model.TaskType(req.TaskType)
	if !taskType.IsWriting() {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "task_type must be task1, task2 or task3"})
		return
	}

	attempt, _, err := c.submissionService.SubmitWriting(ctx.Request.Context(), service.WritingSubmission{
		UserID:          user.ID,
		TaskType:        taskType,
		UserContent:     req.UserContent,
		QuestionContent: req.QuestionContent,
		QuestionID:      req.QuestionID,
		Keywords:        req.Keywords,
	})
	if err != nil {
		log.Error().Err(err).Str("taskType", req.TaskType).Msg("Writing submission failed")
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SubmitResultDTO{AttemptID: attempt.ID, Attempt: toAttemptDTO(attempt)})
}

// ListQuestions godoc
// @Summary List library questions
// @Tags Questions
// @Produce json
// @Param type query string false "Filter by task type (task1, task2, task3)"
// @Param level query string false "Filter by level (basic, intermediate, advanced)"
// @Success 200 {array} dto.QuestionDTO
// @Router /questions [get]
func (c *WritingController) ListQuestions(ctx *gin.Context) {
	questions, err := c.questionService.List(model.TaskType(ctx.Query("type")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if level := model.QuestionLevel(ctx.Query("level")); level != "" {
		questions = lo.Filter(questions, func(q model.Question, _ int) bool { return q.Level == level })
	}
	out := make([]dto.QuestionDTO, 0, len(questions))
	for _, q := range questions {
		var item dto.QuestionDTO
		copier.Copy(&item, &q)
		out = append(out, item)
	}
	ctx.JSON(http.StatusOK, out)
}

// SaveQuestion godoc
// @Summary Save a question to the library
// @Tags Questions
// @Accept json
// @Produce json
// @Param question body dto.SaveQuestionRequest true "Question"
// @Success 201 {object} dto.QuestionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /questions [post]
func (c *WritingController) SaveQuestion(ctx *gin.Context) {
	var req dto.SaveQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question := &model.Question{
		Type:        model.TaskType(req.Type),
		Content:     req.Content,
		Description: req.Description,
		Level:       model.QuestionLevel(req.Level),
		Keywords:    model.StringList(req.Keywords),
	}
	if err := c.questionService.Save(question); err != nil {
		respondError(ctx, err)
		return
	}

	var out dto.QuestionDTO
	copier.Copy(&out, question)
	ctx.JSON(http.StatusCreated, out)
}

// DeleteQuestion godoc
// @Summary Delete a library question
// @Tags Questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (c *WritingController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID"})
		return
	}
	if err := c.questionService.Delete(uint(id)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ImportQuestions godoc
// @Summary Bulk import questions from a JSON array
// @Description Validates each record independently and imports the valid subset. Fails only when no record validates.
// @Tags Questions
// @Accept json
// @Produce json
// @Success 200 {object} dto.ImportResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /questions/import [post]
func (c *WritingController) ImportQuestions(ctx *gin.Context) {
	raw, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read request body"})
		return
	}

	imported, err := c.questionService.ImportJSON(raw)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ImportResultDTO{Imported: imported})
}
