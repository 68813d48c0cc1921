// ABOUTME: Tests for the request cache dedup and retry policy

package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
)

func TestDedupWithinWindow(t *testing.T) {
	c := New()
	calls := 0
	fn := func(ctx context.Context) (interface{}, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.Get(context.Background(), "key", fn)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "value" {
			t.Fatalf("unexpected value %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected one fetch within the dedup window, got %d", calls)
	}
}

func TestRefetchAfterWindow(t *testing.T) {
	c := New()
	now := time.Now()
	c.now = func() time.Time { return now }

	calls := 0
	fn := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	if _, err := c.Get(context.Background(), "key", fn); err != nil {
		t.Fatal(err)
	}
	now = now.Add(DedupWindow + time.Second)
	v, err := c.Get(context.Background(), "key", fn)
	if err != nil {
		t.Fatal(err)
	}
	if v != 2 {
		t.Errorf("expected a refetch after the window, got %v from %d calls", v, calls)
	}
}

func TestRetryBudgetForServerErrors(t *testing.T) {
	c := New()
	calls := 0
	serverErr := &api.Error{Kind: api.KindServer, StatusCode: 500, Message: "boom"}
	fn := func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, serverErr
	}

	_, err := c.Get(context.Background(), "key", fn)
	if !api.IsKind(err, api.KindServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if calls != MaxAttempts {
		t.Errorf("expected %d attempts, got %d", MaxAttempts, calls)
	}
}

func TestNoRetryOnUnauthorized(t *testing.T) {
	c := New()
	calls := 0
	fn := func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, &api.Error{Kind: api.KindUnauthorized, StatusCode: 401}
	}

	_, err := c.Get(context.Background(), "key", fn)
	if !api.IsKind(err, api.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("unauthorized must never be retried, got %d attempts", calls)
	}
}

func TestNoRetryOnForbidden(t *testing.T) {
	c := New()
	calls := 0
	fn := func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, &api.Error{Kind: api.KindForbidden, StatusCode: 403}
	}

	if _, err := c.Get(context.Background(), "key", fn); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("forbidden must never be retried, got %d attempts", calls)
	}
}

func TestErrorsAreNotCachedAsFresh(t *testing.T) {
	c := New()
	calls := 0
	fn := func(ctx context.Context) (interface{}, error) {
		calls++
		if calls <= MaxAttempts {
			return nil, errors.New("transient")
		}
		return "ok", nil
	}

	if _, err := c.Get(context.Background(), "key", fn); err == nil {
		t.Fatal("expected first round to fail")
	}
	v, err := c.Get(context.Background(), "key", fn)
	if err != nil {
		t.Fatalf("expected second round to succeed, got %v", err)
	}
	if v != "ok" {
		t.Errorf("unexpected value %v", v)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := New()
	calls := 0
	fn := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	if _, err := c.Get(context.Background(), "key", fn); err != nil {
		t.Fatal(err)
	}
	c.Invalidate("key")
	v, err := c.Get(context.Background(), "key", fn)
	if err != nil {
		t.Fatal(err)
	}
	if v != 2 {
		t.Errorf("expected refetch after invalidate, got %v", v)
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := New()
	calls := map[string]int{}
	fn := func(key string) Func {
		return func(ctx context.Context) (interface{}, error) {
			calls[key]++
			return calls[key], nil
		}
	}

	keys := []string{"books:all::1", "books:pending::1", "stats"}
	for _, key := range keys {
		if _, err := c.Get(context.Background(), key, fn(key)); err != nil {
			t.Fatal(err)
		}
	}

	c.InvalidatePrefix("books:")

	for _, key := range keys {
		if _, err := c.Get(context.Background(), key, fn(key)); err != nil {
			t.Fatal(err)
		}
	}

	if calls["books:all::1"] != 2 || calls["books:pending::1"] != 2 {
		t.Errorf("expected book pages refetched, got %v", calls)
	}
	if calls["stats"] != 1 {
		t.Errorf("stats must survive a books invalidation, got %d fetches", calls["stats"])
	}
}

func TestConcurrentGetsJoinOneFetch(t *testing.T) {
	c := New()
	calls := 0
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (interface{}, error) {
		calls++
		close(started)
		<-release
		return "joined", nil
	}

	results := make(chan interface{}, 2)
	go func() {
		v, _ := c.Get(context.Background(), "key", fn)
		results <- v
	}()
	<-started
	go func() {
		v, _ := c.Get(context.Background(), "key", func(ctx context.Context) (interface{}, error) {
			t.Error("second fetch must join the first, not run")
			return nil, nil
		})
		results <- v
	}()

	time.Sleep(10 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		if v := <-results; v != "joined" {
			t.Errorf("expected joined result, got %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected exactly one fetch, got %d", calls)
	}
}

func TestTypedGet(t *testing.T) {
	c := New()
	v, err := Get(context.Background(), c, "key", func(ctx context.Context) (int, error) {
		return 7, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if v != 7 {
		t.Errorf("expected 7, got %d", v)
	}
}

func TestGetHonorsContextWhileJoining(t *testing.T) {
	c := New()
	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		c.Get(context.Background(), "key", func(ctx context.Context) (interface{}, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Get(ctx, "key", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled while joining, got %v", err)
	}
	close(release)
}
