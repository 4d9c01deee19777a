package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"
)

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://localhost"); err == nil {
		t.Error("NewRedisCache() with http scheme succeeded")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0?max_retries=-1&dial_timeout=200ms")
	if err == nil {
		t.Fatal("NewRedisCache() against closed port succeeded")
	}
	if !errors.Is(err, ErrNetwork) || !IsRetryable(err) {
		t.Errorf("err = %v, want retryable ErrNetwork", err)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) != nil")
	}
	plain := errors.New("WRONGTYPE")
	if got := classify(plain); got != plain {
		t.Errorf("classify(plain) = %v", got)
	}
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}
	if got := classify(netErr); !IsRetryable(got) || !errors.Is(got, ErrNetwork) {
		t.Errorf("classify(net error) = %v, want retryable ErrNetwork", got)
	}
}

// TestRedisCache runs against a live server when POPOVER_TEST_REDIS is set.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("POPOVER_TEST_REDIS")
	if url == "" {
		t.Skip("POPOVER_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()

	key := "popover-test:" + t.Name()
	t.Cleanup(func() { _ = c.Delete(ctx, key) })

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get() fresh key = %v, %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get() after Delete = hit")
	}
}
