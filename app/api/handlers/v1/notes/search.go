package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onelastai/memory-notes/platform/web/handler"
	"github.com/onelastai/memory-notes/sys"
)

// Search godoc
// @Summary Search notes
// @Description Search content, tags and category. Results are ranked by occurrences times importance.
// @Tags Note
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} note.Note
// @Router /v1/search [get]
func Search(ctx *gin.Context) handler.Result {
	return handler.Result{
		Status: http.StatusOK,
		Body:   sys.R.Notes.Search(ctx.Query("q")),
	}
}
