package redis

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestIdempotencyCheckAndSetFirstRequest(t *testing.T) {
	client, _ := newTestRedisClient(t)
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected first request to claim the key")
	}
}

func TestIdempotencyReplayReturnsStoredResponse(t *testing.T) {
	client, _ := newTestRedisClient(t)
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	response := []byte(`{"id":"entry-1"}`)

	if _, _, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Update(ctx, "req-1", response, time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, stored, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected replay to find the key")
	}
	if !bytes.Equal(stored, response) {
		t.Fatalf("expected stored response %s, got %s", response, stored)
	}
}

func TestIdempotencyCheckAndSetWithImmediateResponse(t *testing.T) {
	client, _ := newTestRedisClient(t)
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	response := []byte("done")

	exists, _, err := store.CheckAndSet(ctx, "req-2", response, time.Minute)
	if err != nil || exists {
		t.Fatalf("expected fresh key, got exists=%v err=%v", exists, err)
	}

	exists, stored, err := store.CheckAndSet(ctx, "req-2", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists || !bytes.Equal(stored, response) {
		t.Fatalf("expected stored response, got exists=%v stored=%s", exists, stored)
	}
}
