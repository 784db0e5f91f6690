package main

import (
	"context"

	"codeberg.org/codescribe/server/internal/config"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	router   *gin.Engine

	// cancelled on shutdown so hijacked websocket connections wind down
	sessionCtx    context.Context
	closeSessions context.CancelFunc
}

// holds the dispatcher shared by every adapter
type Services struct {
	Dispatcher *scribe.Dispatcher
}
