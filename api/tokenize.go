package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obinexuscomputing/marktree/tokenizer"
)

// documentRequest is the shared request body of the document endpoints.
type documentRequest struct {
	Content string            `json:"content" binding:"required"`
	Options tokenizer.Options `json:"options"`
}

type tokenizeResponse struct {
	Tokens      []tokenizer.Token      `json:"tokens"`
	Diagnostics []tokenizer.Diagnostic `json:"diagnostics,omitempty"`
}

func (service *Service) tokenizeDocument(ctx *gin.Context) {
	var req documentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	if service.rejectOversized(ctx, req.Content) {
		return
	}

	tokens, diags := tokenizer.Tokenize(req.Content, req.Options)

	ctx.JSON(http.StatusOK, tokenizeResponse{
		Tokens:      tokens,
		Diagnostics: diags,
	})
}

// rejectOversized enforces the MAX_DOCUMENT_BYTES cap. A zero cap means
// unlimited.
func (service *Service) rejectOversized(ctx *gin.Context, content string) bool {
	limit := service.config.MaxDocumentBytes
	if limit <= 0 || int64(len(content)) <= limit {
		return false
	}

	err := fmt.Errorf("document of %d bytes exceeds the %d byte limit", len(content), limit)
	ctx.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(err))

	return true
}
