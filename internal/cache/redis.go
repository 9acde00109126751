package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys for the catalog and template reads that back the editor
// dropdowns. These are read on almost every document edit.
const (
	CustomersKey  = "customers:all"
	ItemsKeyFmt   = "items:%s"
	RatesKeyFmt   = "rates:%s"
	TemplatesKey  = "templates:all"
	DefaultTplKey = "templates:default"
	CatalogTTL    = 5 * time.Minute
	TemplateTTL   = 10 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays
// nil and every cache call degrades to a miss.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateCustomerCaches clears customer list caches
// Called when: CreateCustomer, UpdateCustomer, DeleteCustomer
func InvalidateCustomerCaches(ctx context.Context) {
	InvalidatePattern(ctx, "customers:*")
}

// InvalidateCatalogCaches clears item and rate caches
// Called when: any catalog create/update/delete
func InvalidateCatalogCaches(ctx context.Context) {
	InvalidatePattern(ctx, "items:*")
	InvalidatePattern(ctx, "rates:*")
}

// InvalidateTemplateCaches clears template caches
// Called when: CreateTemplate, UpdateTemplate, SetDefault, DeleteTemplate
func InvalidateTemplateCaches(ctx context.Context) {
	InvalidateKeys(ctx, TemplatesKey, DefaultTplKey)
}

// IsHealthy returns true if the Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
