package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStoreSetGet(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	ctx := context.Background()

	s.Set(ctx, "k", "v")
	got, ok := s.Get(ctx, "k")
	if !ok || got != "v" {
		t.Fatalf("Get = (%v, %v), want (v, true)", got, ok)
	}

	s.Delete(ctx, "k")
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("deleted key must not resolve")
	}
}

func TestStoreExpiry(t *testing.T) {
	t.Parallel()

	s := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	s.Set(ctx, "k", "v")
	time.Sleep(25 * time.Millisecond)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("expired key must not resolve")
	}
}

func TestGetOrLoadDeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	ctx := context.Background()

	var loads atomic.Int32
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "loaded", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.GetOrLoad(ctx, "k", loader)
			if err != nil || got != "loaded" {
				t.Errorf("GetOrLoad = (%v, %v)", got, err)
			}
		}()
	}
	wg.Wait()

	if n := loads.Load(); n != 1 {
		t.Fatalf("loader ran %d times, want 1", n)
	}
}

func TestGetOrLoadRequiresLoader(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	if _, err := s.GetOrLoad(context.Background(), "k", nil); err == nil {
		t.Fatal("nil loader must error")
	}
}
