package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"

	"github.com/vdtri/toeicmate/internal/dto"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/service"
	"github.com/vdtri/toeicmate/internal/session"
)

type VocabularyController struct {
	vocabularyService service.VocabularyService
	sess              *session.Store
}

func NewVocabularyController(vocabularyService service.VocabularyService, sess *session.Store) *VocabularyController {
	return &VocabularyController{vocabularyService: vocabularyService, sess: sess}
}

// List godoc
// @Summary List the active user's saved vocabulary, newest first
// @Tags Vocabulary
// @Produce json
// @Param q query string false "Case-insensitive substring matched against both languages"
// @Success 200 {array} dto.VocabularyDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /vocabulary [get]
func (c *VocabularyController) List(ctx *gin.Context) {
	user, ok := requireUser(ctx, c.sess)
	if !ok {
		return
	}

	entries, err := c.vocabularyService.List(user.ID, ctx.Query("q"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]dto.VocabularyDTO, 0, len(entries))
	for _, entry := range entries {
		var item dto.VocabularyDTO
		copier.Copy(&item, &entry)
		out = append(out, item)
	}
	ctx.JSON(http.StatusOK, out)
}

// Add godoc
// @Summary Save a word pair to the active user's vocabulary
// @Tags Vocabulary
// @Accept json
// @Produce json
// @Param word body dto.AddVocabularyRequest true "Word pair"
// @Success 201 {object} dto.VocabularyDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /vocabulary [post]
func (c *VocabularyController) Add(ctx *gin.Context) {
	user, ok := requireUser(ctx, c.sess)
	if !ok {
		return
	}

	var req dto.AddVocabularyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	entry := &model.Vocabulary{
		UserID:           user.ID,
		Vietnamese:       req.Vietnamese,
		English:          req.English,
		Context:          req.Context,
		ProficiencyLevel: req.ProficiencyLevel,
	}
	if err := c.vocabularyService.Add(entry); err != nil {
		respondError(ctx, err)
		return
	}

	var out dto.VocabularyDTO
	copier.Copy(&out, entry)
	ctx.JSON(http.StatusCreated, out)
}

// Delete godoc
// @Summary Remove a word from the vocabulary
// @Tags Vocabulary
// @Produce json
// @Param id path int true "Vocabulary ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Router /vocabulary/{id} [delete]
func (c *VocabularyController) Delete(ctx *gin.Context) {
	if _, ok := requireUser(ctx, c.sess); !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid vocabulary ID"})
		return
	}
	if err := c.vocabularyService.Delete(uint(id)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
