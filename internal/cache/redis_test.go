package cache

import (
	"context"
	"testing"
	"time"
)

// Without a Redis connection every cache call must degrade to a miss
// or a no-op instead of panicking.
func TestNilClientDegradesGracefully(t *testing.T) {
	if client != nil {
		t.Skip("redis client is connected")
	}
	ctx := context.Background()

	if data, ok := GetCached(ctx, DefaultTplKey); ok || data != nil {
		t.Fatalf("GetCached without a client = (%v, %v), want miss", data, ok)
	}

	SetCached(ctx, DefaultTplKey, []byte(`{}`), time.Minute)
	if _, ok := GetCached(ctx, DefaultTplKey); ok {
		t.Fatal("SetCached without a client stored data")
	}

	InvalidateKeys(ctx, TemplatesKey, DefaultTplKey)
	InvalidatePattern(ctx, "customers:*")
	InvalidateCustomerCaches(ctx)
	InvalidateCatalogCaches(ctx)
	InvalidateTemplateCaches(ctx)

	if IsHealthy() {
		t.Fatal("IsHealthy without a client = true")
	}
}
