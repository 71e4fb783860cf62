package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"shopping-assistant-be/internal/config"
	"shopping-assistant-be/pkg/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const connectTimeout = 5 * time.Second

// OpenDatabase connects when a DSN is configured. A nil DB without error
// means persistence is off.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Database.Connection == "" {
		return nil, nil
	}
	db, err := database.NewGormDB(database.GormConfig{
		DSN:     cfg.Database.Connection,
		Verbose: cfg.Database.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to connect to GORM DB: %w", err)
	}
	return db, nil
}

// OpenRedis connects when a URL is configured. An unreachable Redis is
// reported and skipped; the session cache is optional.
func OpenRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.App.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (session cache disabled)", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
