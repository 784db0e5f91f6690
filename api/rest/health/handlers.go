package health

import (
	"net/http"

	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/gin-gonic/gin"
)

const (
	serviceName = "codescribe"
	version     = "1.0.0"
)

// returns the server health status, including whether model calls are live
func Handler(dispatcher *scribe.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:    "healthy",
			Service:   serviceName,
			Version:   version,
			AIEnabled: dispatcher.AIEnabled(),
			Model:     dispatcher.Model(),

			LLMTimeoutSeconds: int(dispatcher.Timeout().Seconds()),
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
