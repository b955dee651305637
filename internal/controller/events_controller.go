package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vdtri/toeicmate/internal/dto"
	"github.com/vdtri/toeicmate/internal/store"
)

var knownCollections = map[string]bool{
	store.CollectionUsers:      true,
	store.CollectionAttempts:   true,
	store.CollectionQuestions:  true,
	store.CollectionVocabulary: true,
}

// EventsController projects the live-query bus as an SSE stream so the view
// layer can re-resolve its queries whenever the underlying collection changes.
type EventsController struct {
	bus *store.Bus
}

func NewEventsController(bus *store.Bus) *EventsController {
	return &EventsController{bus: bus}
}

// Stream godoc
// @Summary Subscribe to change notifications for one collection
// @Description Emits one SSE frame per committed change. Events only signal that the collection changed; the client re-runs its query to pick up the new state.
// @Tags Events
// @Produce text/event-stream
// @Param collection query string true "Collection name (users, attempts, questions, vocabulary)"
// @Param key query string false "Optional scope such as user:5; empty subscribes to the whole collection"
// @Success 200 {object} store.Event
// @Failure 400 {object} dto.ErrorResponse
// @Router /events [get]
func (c *EventsController) Stream(ctx *gin.Context) {
	collection := ctx.Query("collection")
	if !knownCollections[collection] {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Unknown collection"})
		return
	}

	sub := c.bus.Subscribe(collection, ctx.Query("key"))
	defer sub.Close()

	log.Debug().Str("collection", collection).Str("key", ctx.Query("key")).Msg("live-query stream opened")

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	done := ctx.Request.Context().Done()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-sub.C:
			if !open {
				return false
			}
			ctx.SSEvent("change", ev)
			return true
		case <-done:
			return false
		}
	})
}
