package websocket

import (
	"context"

	"codeberg.org/codescribe/server/internal/config"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/gin-gonic/gin"
)

// shutdown ends open sessions when the server stops
func RegisterRoutes(shutdown context.Context, router *gin.RouterGroup, dispatcher *scribe.Dispatcher, cfg *config.Config) {
	router.GET("/ws", SessionHandler(shutdown, dispatcher, cfg))
}
