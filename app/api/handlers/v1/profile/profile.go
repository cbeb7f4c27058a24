package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onelastai/memory-notes/business/v1/note"
	"github.com/onelastai/memory-notes/platform/web/handler"
	"github.com/onelastai/memory-notes/sys"
)

// Get godoc
// @Summary Owner profile
// @Tags Profile
// @Produce json
// @Success 200 {object} note.Profile
// @Router /v1/profile [get]
func Get(_ *gin.Context) handler.Result {
	return handler.Result{
		Status: http.StatusOK,
		Body:   note.Profile{Name: sys.R.Notes.OwnerName()},
	}
}

// Put godoc
// @Summary Rename the owner
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body note.Profile true "Profile"
// @Success 200 {object} note.Profile
// @Failure 400 {object} handler.Error
// @Failure 500 {object} handler.Error
// @Router /v1/profile [put]
func Put(ctx *gin.Context) handler.Result {
	var p note.Profile
	if err := ctx.ShouldBindJSON(&p); err != nil {
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: "invalid body: " + err.Error()},
		}
	}

	err := sys.R.Notes.SetOwnerName(ctx, p.Name)
	switch {
	case errors.Is(err, note.ErrInvalidInput):
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: err.Error()},
		}
	case err != nil:
		sys.R.Log.Errorw("set owner", "ERROR", err)
		return handler.Result{
			Status: http.StatusInternalServerError,
			Body:   handler.Error{Message: err.Error()},
		}
	}

	return handler.Result{
		Status: http.StatusOK,
		Body:   note.Profile{Name: sys.R.Notes.OwnerName()},
	}
}
