package di

import (
	"fmt"

	"github.com/julija05/kidseducation-guard/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Demo       *handler.DemoHandler
	Moderation *handler.ModerationHandler
	Content    *handler.ContentProxy
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) (*Handlers, error) {
	healthHandler := handler.NewHealthHandler(string(c.config.Store.Backend))
	if c.PgClient != nil {
		healthHandler.RegisterChecker("postgres", c.PgClient)
	}
	if c.RedisClient != nil {
		healthHandler.RegisterChecker("redis", c.RedisClient)
	}

	content, err := handler.NewContentProxy(c.config.Upstream.ContentURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize content proxy: %w", err)
	}

	return &Handlers{
		Health:     healthHandler,
		Auth:       handler.NewAuthHandler(c.Guard.Logout),
		Demo:       handler.NewDemoHandler(c.Guard.StartDemo, c.Guard.GetDemoStatus),
		Moderation: handler.NewModerationHandler(c.Guard.CheckText, c.Guard.GetAdvisoryRules),
		Content:    content,
	}, nil
}
