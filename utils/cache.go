package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"warrapay/config"
)

// CacheClient caches checkout-session → customer lookups. It stays nil
// when no Redis address is configured; callers must tolerate that.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the cache client, which may be nil when Redis
// is not configured.
func GetCacheClient() *redis.Client {
	return CacheClient
}
