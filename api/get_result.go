package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/obinexuscomputing/marktree/tmpstore"
)

func (service *Service) getParseResult(ctx *gin.Context) {
	param := ctx.Param("id")

	// result ids are uuids handed out by the parse endpoint
	if _, err := uuid.Parse(param); err != nil {
		err := fmt.Errorf("invalid result id: %q", param)
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	result, err := service.store.GetParseResult(ctx, param)
	if err != nil {
		if errors.Is(err, tmpstore.ErrResultNotFound) {
			err := fmt.Errorf("parse result [%s] not found", param)
			ctx.JSON(http.StatusNotFound, NewErrorResponse(err))
			return
		}

		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}
