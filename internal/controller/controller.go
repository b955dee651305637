// Package controller holds the HTTP surface consumed by the external view
// layer. Controllers carry no business logic: they translate between
// transport and the services, and project live-query notifications as SSE.
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/dto"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/session"
)

// requireUser resolves the active user from the session store. Before
// hydration completes the session is "unknown", not "logged out", so the
// answer is 503 rather than 401: the client must wait, not redirect to login.
func requireUser(ctx *gin.Context, sess *session.Store) (*model.User, bool) {
	snap := sess.Snapshot()
	if snap.IsLoading() {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: "Session is still loading, try again shortly"})
		return nil, false
	}
	if snap.CurrentUser == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "No active user, log in first"})
		return nil, false
	}
	return snap.CurrentUser, true
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	var validationErr *apperr.ValidationError
	var gatewayErr *apperr.GatewayError

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Not found"})
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid input", Details: []string{err.Error()}})
	case errors.As(err, &gatewayErr):
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "AI service call failed", Details: []string{err.Error()}})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal error", Details: []string{err.Error()}})
	}
}

func toAttemptDTO(attempt *model.Attempt) dto.AttemptDTO {
	out := dto.AttemptDTO{
		ID:              attempt.ID,
		UserID:          attempt.UserID,
		TaskType:        string(attempt.TaskType),
		QuestionID:      attempt.QuestionID,
		UserContent:     attempt.UserContent,
		QuestionContent: attempt.QuestionContent,
		Score:           attempt.Score,
		Timestamp:       attempt.Timestamp,
	}
	if attempt.AIFeedback != "" && json.Valid([]byte(attempt.AIFeedback)) {
		out.AIFeedback = json.RawMessage(attempt.AIFeedback)
	}
	return out
}
