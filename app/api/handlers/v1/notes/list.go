package notes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/onelastai/memory-notes/platform/web/handler"
	"github.com/onelastai/memory-notes/sys"
)

const defaultLimit = "10"

// List godoc
// @Summary List notes
// @Description List notes, most recent first
// @Tags Note
// @Produce json
// @Param limit query int false "Max notes to return, 0 for all" default(10)
// @Success 200 {array} note.Note
// @Failure 400 {object} handler.Error
// @Router /v1/notes [get]
func List(ctx *gin.Context) handler.Result {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", defaultLimit))
	if err != nil || limit < 0 {
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: "invalid limit"},
		}
	}

	return handler.Result{
		Status: http.StatusOK,
		Body:   sys.R.Notes.List(limit),
	}
}
