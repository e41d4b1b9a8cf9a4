package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "dashboard:f1:2024-03", `{"total":"7000"}`, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "dashboard:f1:2024-03")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if val != `{"total":"7000"}` {
		t.Fatalf("unexpected value: %s", val)
	}

	// Keys are namespaced so other redis users cannot collide.
	if !mr.Exists("cache:dashboard:f1:2024-03") {
		t.Fatal("expected prefixed key in redis")
	}
}

func TestCacheGetMiss(t *testing.T) {
	client, _ := newTestRedisClient(t)
	defer client.Close()

	cache := NewCache(client)

	_, err := cache.Get(context.Background(), "absent")
	if err != redislib.Nil {
		t.Fatalf("expected redis.Nil, got %v", err)
	}
}

func TestCacheExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := cache.Get(ctx, "key"); err != redislib.Nil {
		t.Fatalf("expected the key to expire, got %v", err)
	}
}

func TestCacheDeletePrefix(t *testing.T) {
	client, _ := newTestRedisClient(t)
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "dashboard:f1:2024-03", "a", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Set(ctx, "dashboard::2024-03", "b", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Set(ctx, "other:key", "c", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.DeletePrefix(ctx, "dashboard:"); err != nil {
		t.Fatalf("delete prefix failed: %v", err)
	}

	if _, err := cache.Get(ctx, "dashboard:f1:2024-03"); err != redislib.Nil {
		t.Fatalf("expected the facility summary to be gone, got %v", err)
	}
	if _, err := cache.Get(ctx, "dashboard::2024-03"); err != redislib.Nil {
		t.Fatalf("expected the all-facility summary to be gone, got %v", err)
	}
	if val, err := cache.Get(ctx, "other:key"); err != nil || val != "c" {
		t.Fatalf("expected unrelated keys to survive, got %q, %v", val, err)
	}

	// Deleting with nothing cached is not an error.
	if err := cache.DeletePrefix(ctx, "dashboard:"); err != nil {
		t.Fatalf("delete prefix on empty set failed: %v", err)
	}
}
