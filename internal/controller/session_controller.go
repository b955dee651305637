package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/vdtri/toeicmate/internal/dto"
	"github.com/vdtri/toeicmate/internal/service"
	"github.com/vdtri/toeicmate/internal/session"
)

type SessionController struct {
	userService service.UserService
	sess        *session.Store
}

func NewSessionController(userService service.UserService, sess *session.Store) *SessionController {
	return &SessionController{userService: userService, sess: sess}
}

// Login godoc
// @Summary Log in (or create) a user by name
// @Description Resolves the name to an existing user or creates one on first use, and sets the session's current user.
// @Tags Session
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "User name"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *SessionController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.userService.Login(req.Name)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Login failed")
		respondError(ctx, err)
		return
	}

	var out dto.UserDTO
	copier.Copy(&out, user)
	ctx.JSON(http.StatusOK, out)
}

// Logout godoc
// @Summary Log out the current user
// @Description Clears the session's current user. The user record and the AI settings are kept.
// @Tags Session
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (c *SessionController) Logout(ctx *gin.Context) {
	c.userService.Logout()
	ctx.Status(http.StatusNoContent)
}

// GetSession godoc
// @Summary Read the current session state
// @Description Returns the current user and AI configuration. is_loading is true until hydration completes; until then a missing current_user means "unknown", not "logged out".
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionDTO
// @Router /session [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	snap := c.sess.Snapshot()
	out := dto.SessionDTO{
		GeminiModel: snap.GeminiModel,
		HasToken:    snap.GeminiToken != "",
		AIPrompt:    snap.AIPrompt,
		IsLoading:   snap.IsLoading(),
	}
	if snap.CurrentUser != nil {
		var user dto.UserDTO
		copier.Copy(&user, snap.CurrentUser)
		out.CurrentUser = &user
	}
	ctx.JSON(http.StatusOK, out)
}

// UpdateSettings godoc
// @Summary Update AI settings
// @Description Applies partial changes to the Gemini token, model name and custom instructions. Changes take effect immediately; persistence is asynchronous.
// @Tags Session
// @Accept json
// @Produce json
// @Param settings body dto.SettingsUpdateRequest true "Partial settings"
// @Success 200 {object} dto.SessionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /settings [put]
func (c *SessionController) UpdateSettings(ctx *gin.Context) {
	var req dto.SettingsUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if req.GeminiToken != nil {
		c.sess.SetGeminiToken(*req.GeminiToken)
	}
	if req.GeminiModel != nil {
		c.sess.SetGeminiModel(*req.GeminiModel)
	}
	if req.AIPrompt != nil {
		c.sess.SetAIPrompt(*req.AIPrompt)
	}

	c.GetSession(ctx)
}
