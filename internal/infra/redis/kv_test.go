package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestKVStoresUnderPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewKV(newClient(mr), "test:")
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "iqb_quizzes_v1"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "iqb_quizzes_v1", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("test:iqb_quizzes_v1") {
		t.Fatalf("expected prefixed redis key to be set")
	}
	if ttl := mr.TTL("test:iqb_quizzes_v1"); ttl != 0 {
		t.Fatalf("expected no expiry, got %v", ttl)
	}

	v, ok, err := store.Get(ctx, "iqb_quizzes_v1")
	if err != nil || !ok || v != `[]` {
		t.Fatalf("expected stored value, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestKVDefaultPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewKV(newClient(mr), "")
	if err := store.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get(DefaultPrefix + "k"); got != "v" {
		t.Fatalf("expected value under default prefix, got %q", got)
	}
}

func TestKVReportsConnectionErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	mr.Close()

	if _, _, err := NewKV(client, "").Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected error once redis is gone")
	}
}

func TestKVOverlappingGets(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewKV(newClient(mr), "")
	ctx := context.Background()
	if err := store.Set(ctx, "iqb_attempts_v1", `[{"id":"att_1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, ok, err := store.Get(ctx, "iqb_attempts_v1")
			if err != nil || !ok || v != `[{"id":"att_1"}]` {
				errs <- fmt.Errorf("got %q ok=%v err=%v", v, ok, err)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("overlapping get: %v", err)
	}

	if err := store.Set(ctx, "iqb_attempts_v1", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _, _ := store.Get(ctx, "iqb_attempts_v1"); v != `[]` {
		t.Fatalf("expected fresh value after set, got %q", v)
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
