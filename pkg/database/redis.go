package database

import (
	"context"
	"fmt"
	"log"
	"plugga_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis opens the client backing the reconciliation cache and pings it
// once. The cache is load-bearing when the record store is down, so a failed
// ping aborts startup instead of degrading silently.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	log.Println("Redis connection established")
	return rdb, nil
}
