package main

import (
	"codeberg.org/codescribe/server/api/rest/analyze"
	"codeberg.org/codescribe/server/api/rest/health"
	"codeberg.org/codescribe/server/api/rest/home"
	"codeberg.org/codescribe/server/api/websocket"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server, analyzeLimit gin.HandlerFunc) {
	dispatcher := server.services.Dispatcher

	router.Use(CORSMiddleware(server.config.AllowedOrigins))
	router.GET("/health", health.Handler(dispatcher))

	home.RegisterRoutes(router, dispatcher)
	analyze.RegisterRoutes(router, dispatcher, analyzeLimit)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		websocket.RegisterRoutes(server.sessionCtx, v1, dispatcher, server.config)
	}
}
