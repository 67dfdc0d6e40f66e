package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/obinexuscomputing/marktree/dom"
	"github.com/obinexuscomputing/marktree/tmpstore"
)

type parseResponse struct {
	// ResultID retrieves the stored result from /documents/results/:id
	// until its TTL expires.
	ResultID string    `json:"result_id"`
	Tree     *dom.Tree `json:"tree"`
}

func (service *Service) parseDocument(ctx *gin.Context) {
	var req documentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	if service.rejectOversized(ctx, req.Content) {
		return
	}

	tree := dom.ParseWithOptions(req.Content, req.Options)

	id := uuid.NewString()

	result := tmpstore.ParseResult{
		ID:        id,
		Content:   req.Content,
		Options:   req.Options,
		Tree:      tree,
		CreatedAt: time.Now().UTC(),
	}

	if err := service.store.SaveParseResult(ctx, id, result, service.config.ResultTTL); err != nil {
		log.Error().Err(err).Str(requestIDKey, ctx.GetString(requestIDKey)).Msg("failed to store parse result")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, parseResponse{
		ResultID: id,
		Tree:     tree,
	})
}
