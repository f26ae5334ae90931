package di

import (
	"context"
	"fmt"
	"time"

	"ai-character-chat/backend/internal/ai"
	"ai-character-chat/backend/pkg/health"
	"ai-character-chat/backend/shared/redis"

	"gorm.io/gorm"
)

func registerHealthChecks(checker *health.Checker, db *gorm.DB, rdb *redis.Client, gateway ai.Gateway) {
	checker.RegisterCheck("database", func() (health.Status, string, error) {
		sqlDB, err := db.DB()
		if err != nil {
			return health.StatusDown, "cannot access connection pool", err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return health.StatusDown, "ping failed", err
		}
		return health.StatusUp, "connected", nil
	})

	checker.RegisterCheck("redis", func() (health.Status, string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx); err != nil {
			return health.StatusDown, "ping failed", err
		}
		return health.StatusUp, "connected", nil
	})

	checker.RegisterCheck("ai_providers", func() (health.Status, string, error) {
		available := 0
		for _, p := range gateway.Catalog() {
			if p.Available {
				available++
			}
		}
		if available == 0 {
			return health.StatusDown, "no provider API keys configured", fmt.Errorf("no providers available")
		}
		return health.StatusUp, fmt.Sprintf("%d provider(s) available", available), nil
	})
}
