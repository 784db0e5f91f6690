package main

import (
	"context"
	"fmt"

	"codeberg.org/codescribe/server/internal/config"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	services, err := InitializeServices(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	analyzeLimit, err := RateLimitMiddleware(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// client IP keys the rate limiter, so forwarded headers count only from known proxies
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	sessionCtx, closeSessions := context.WithCancel(ctx)

	server := &Server{
		config:        cfg,
		services:      services,
		router:        router,
		sessionCtx:    sessionCtx,
		closeSessions: closeSessions,
	}

	RegisterRoutes(router, server, analyzeLimit)

	return server, nil
}
