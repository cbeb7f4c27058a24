package notes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onelastai/memory-notes/platform/web/handler"
	"github.com/onelastai/memory-notes/sys"
)

// Stats godoc
// @Summary Notes stats
// @Tags Note
// @Produce json
// @Success 200 {object} note.Stats
// @Router /v1/stats [get]
func Stats(_ *gin.Context) handler.Result {
	return handler.Result{
		Status: http.StatusOK,
		Body:   sys.R.Notes.Stats(time.Now()),
	}
}
