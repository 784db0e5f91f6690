package websocket

import (
	"context"

	"codeberg.org/codescribe/server/internal/config"
	"codeberg.org/codescribe/server/internal/llm"
	"codeberg.org/codescribe/server/internal/logger"
	"codeberg.org/codescribe/server/internal/scribe"
	ws "codeberg.org/codescribe/server/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// SessionHandler godoc
// @Summary Interactive session
// @Description Upgrades to a websocket. Clients send set_key and action messages; the server replies with key_status, result or error.
// @Tags websocket
// @Success 101 {string} string "Switching Protocols"
// @Router /api/v1/ws [get]
func SessionHandler(shutdown context.Context, dispatcher *scribe.Dispatcher, cfg *config.Config) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     ws.CheckOrigin(cfg.AllowedOrigins),
	}

	newGen := func(apiKey string) (llm.TextGenerator, error) {
		return llm.NewSessionGenerator(shutdown, cfg, apiKey)
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// upgrader already wrote the http error
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}

		session, err := ws.NewSession(conn, dispatcher, newGen)
		if err != nil {
			logger.ErrorErr(err, "failed to create session")
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session unavailable"))
			conn.Close()
			return
		}

		logger.Info("websocket session opened", "session_id", session.ID, "client_ip", c.ClientIP())

		session.Serve(shutdown)

		logger.Info("websocket session closed", "session_id", session.ID)
	}
}
