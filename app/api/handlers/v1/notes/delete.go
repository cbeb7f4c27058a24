package notes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/onelastai/memory-notes/platform/web/handler"
	"github.com/onelastai/memory-notes/sys"
)

// Delete godoc
// @Summary Delete a note
// @Description Delete a note using its id, deleting an unknown id succeeds
// @Tags Note
// @Param id path string true "Note id"
// @Success 204
// @Failure 400 {object} handler.Error
// @Failure 500 {object} handler.Error
// @Router /v1/notes/{id} [delete]
func Delete(ctx *gin.Context) handler.Result {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: "invalid id"},
		}
	}

	if _, err := sys.R.Notes.Delete(ctx, id); err != nil {
		sys.R.Log.Errorw("delete note", "id", id, "ERROR", err)
		return handler.Result{
			Status: http.StatusInternalServerError,
			Body:   handler.Error{Message: err.Error()},
		}
	}

	return handler.Result{Status: http.StatusNoContent}
}
