package handler

import (
	"github.com/gin-gonic/gin"
)

// Result is what a Handler answers, the wrapper renders it as json
type Result struct {
	Status int
	Body   any
}

// Error is the body returned for any failed request
type Error struct {
	Message string `json:"message" example:"invalid id"`
}

// Handler is a gin handler that returns its result instead of writing it
type Handler func(ctx *gin.Context) Result

// Wrapper adapts a Handler into a gin.HandlerFunc
func Wrapper(h Handler) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		r := h(ctx)
		if r.Body == nil {
			ctx.Status(r.Status)
			return
		}
		ctx.JSON(r.Status, r.Body)
	}
}
