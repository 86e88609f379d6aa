package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/warmpaws/warmpaws-backend/pkg/config"
)

// cmdable is the slice of go-redis this package uses, kept narrow so
// tests can stub it.
type cmdable interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Ping(ctx context.Context) *goredis.StatusCmd
}

// Client namespaces keys and exposes the idempotency primitive used
// by webhook settlement.
type Client struct {
	rdb cmdable
}

func Connect(cfg config.Redis) *Client {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Client{rdb: rdb}
}

// FromCmdable wraps an existing command surface. Tests use this.
func FromCmdable(rdb cmdable) *Client {
	return &Client{rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// IdempotencyKey namespaces a deduplication key.
func IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("wp:idempotency:%s:%s", scope, id)
}

// ClaimOnce returns true exactly once per key within ttl. Used as a
// fast-path guard; the database remains the authority.
func (c *Client) ClaimOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Release drops a claim so a failed handler can be retried.
func (c *Client) Release(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
