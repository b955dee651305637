package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vdtri/toeicmate/internal/dto"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/service"
	"github.com/vdtri/toeicmate/internal/session"
)

type HistoryController struct {
	historyService  service.HistoryService
	progressService service.ProgressService
	sess            *session.Store
}

func NewHistoryController(
	historyService service.HistoryService,
	progressService service.ProgressService,
	sess *session.Store,
) *HistoryController {
	return &HistoryController{
		historyService:  historyService,
		progressService: progressService,
		sess:            sess,
	}
}

// ListAttempts godoc
// @Summary List the active user's attempts, newest first
// @Tags History
// @Produce json
// @Param type query string false "Filter by task type"
// @Param limit query int false "Maximum number of attempts to return"
// @Success 200 {array} dto.AttemptDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /attempts [get]
func (c *HistoryController) ListAttempts(ctx *gin.Context) {
	user, ok := requireUser(ctx, c.sess)
	if !ok {
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit"})
			return
		}
		limit = parsed
	}

	attempts, err := c.historyService.ListByUser(user.ID, model.TaskType(ctx.Query("type")), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]dto.AttemptDTO, 0, len(attempts))
	for i := range attempts {
		out = append(out, toAttemptDTO(&attempts[i]))
	}
	ctx.JSON(http.StatusOK, out)
}

// GetAttempt godoc
// @Summary Fetch one attempt with its full grading feedback
// @Tags History
// @Produce json
// @Param id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{id} [get]
func (c *HistoryController) GetAttempt(ctx *gin.Context) {
	user, ok := requireUser(ctx, c.sess)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt ID"})
		return
	}

	attempt, err := c.historyService.Get(uint(id))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if attempt.UserID != user.ID {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Not found"})
		return
	}
	ctx.JSON(http.StatusOK, toAttemptDTO(attempt))
}

// Progress godoc
// @Summary Aggregate the active user's practice history
// @Tags History
// @Produce json
// @Param recent query int false "Number of recent attempts to include"
// @Success 200 {object} service.ProgressSummary
// @Failure 401 {object} dto.ErrorResponse
// @Router /progress [get]
func (c *HistoryController) Progress(ctx *gin.Context) {
	user, ok := requireUser(ctx, c.sess)
	if !ok {
		return
	}

	recent, _ := strconv.Atoi(ctx.Query("recent"))
	summary, err := c.progressService.Summary(user.ID, recent)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// AnalyzeProgress godoc
// @Summary Run an AI analysis over the active user's recent history
// @Tags History
// @Produce json
// @Success 200 {object} gateway.ProgressAnalysis
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /progress/analyze [post]
func (c *HistoryController) AnalyzeProgress(ctx *gin.Context) {
	user, ok := requireUser(ctx, c.sess)
	if !ok {
		return
	}

	analysis, err := c.progressService.Analyze(ctx.Request.Context(), user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, analysis)
}
