package analyze

import (
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/gin-gonic/gin"
)

// registers the analyze route; middleware runs before the handler
func RegisterRoutes(router gin.IRoutes, dispatcher *scribe.Dispatcher, middleware ...gin.HandlerFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(middleware)+1)
	handlers = append(handlers, middleware...)
	handlers = append(handlers, Handler(dispatcher))

	router.POST("/analyze", handlers...)
}
