package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/onelastai/memory-notes/app/api/handlers/v1/healthcheck"
	"github.com/onelastai/memory-notes/app/api/handlers/v1/notes"
	"github.com/onelastai/memory-notes/app/api/handlers/v1/profile"
	"github.com/onelastai/memory-notes/platform/web/handler"
)

func MapDefaults(r *gin.Engine) {
	r.GET("/v1/healthcheck", handler.Wrapper(healthcheck.Get))
}

func MapApi(r *gin.Engine) {
	r.POST("/v1/notes", handler.Wrapper(notes.Create))
	r.GET("/v1/notes", handler.Wrapper(notes.List))
	r.GET("/v1/notes/:id", handler.Wrapper(notes.Get))
	r.DELETE("/v1/notes/:id", handler.Wrapper(notes.Delete))
	r.GET("/v1/search", handler.Wrapper(notes.Search))
	r.GET("/v1/stats", handler.Wrapper(notes.Stats))
	r.GET("/v1/profile", handler.Wrapper(profile.Get))
	r.PUT("/v1/profile", handler.Wrapper(profile.Put))
}
