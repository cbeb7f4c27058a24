package notes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onelastai/memory-notes/business/v1/note"
	"github.com/onelastai/memory-notes/platform/web/handler"
	"github.com/onelastai/memory-notes/sys"
)

// Create godoc
// @Summary Store a note
// @Description Store a note, category and importance are inferred when omitted
// @Tags Note
// @Accept json
// @Produce json
// @Param note body note.NewNote true "New note"
// @Success 201 {object} note.Note
// @Failure 400 {object} handler.Error
// @Failure 500 {object} handler.Error
// @Router /v1/notes [post]
func Create(ctx *gin.Context) handler.Result {
	var newN note.NewNote
	if err := ctx.ShouldBindJSON(&newN); err != nil {
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: "invalid body: " + err.Error()},
		}
	}

	created, err := sys.R.Notes.Add(ctx, newN)

	switch {
	case errors.Is(err, note.ErrInvalidInput):
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: err.Error()},
		}
	case err != nil:
		sys.R.Log.Errorw("create note", "ERROR", err)
		return handler.Result{
			Status: http.StatusInternalServerError,
			Body:   handler.Error{Message: err.Error()},
		}
	default:
		return handler.Result{
			Status: http.StatusCreated,
			Body:   created,
		}
	}
}
