package config

import (
	"context"
	"fmt"
	"time"

	"healthtracker/services"

	"github.com/go-redis/redis/v8"
)

// NewSessionStore builds the configured session backend. The returned close
// func releases the redis client and is a no-op for the memory store.
func NewSessionStore(ctx context.Context, cfg *Config) (services.SessionStore, func() error, error) {
	switch cfg.Session.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return services.NewRedisSessionStore(client), client.Close, nil
	case "memory", "":
		return services.NewMemorySessionStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
