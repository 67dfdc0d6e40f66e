package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obinexuscomputing/marktree/dom"
	"github.com/obinexuscomputing/marktree/optimizer"
	"github.com/obinexuscomputing/marktree/tokenizer"
)

type optimizeResponse struct {
	Optimized   *optimizer.Tree        `json:"optimized"`
	Diagnostics []tokenizer.Diagnostic `json:"diagnostics,omitempty"`
	Errors      []dom.BuildError       `json:"errors,omitempty"`
}

func (service *Service) optimizeDocument(ctx *gin.Context) {
	var req documentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	if service.rejectOversized(ctx, req.Content) {
		return
	}

	tree := dom.ParseWithOptions(req.Content, req.Options)

	optimized, err := optimizer.Optimize(tree)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, optimizeResponse{
		Optimized:   optimized,
		Diagnostics: tree.Diagnostics,
		Errors:      tree.Errors,
	})
}
