package redis

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/userbase/backend/repository"
)

type loginThrottle struct {
	client *redislib.Client
	prefix string
	window time.Duration
}

// NewLoginThrottle creates a Redis-backed fixed-window attempt counter.
func NewLoginThrottle(client *redislib.Client, window time.Duration) repository.LoginThrottle {
	if window <= 0 {
		window = time.Minute
	}
	return &loginThrottle{
		client: client,
		prefix: "login_attempts:",
		window: window,
	}
}

func (t *loginThrottle) Hit(ctx context.Context, key string) (int, error) {
	count, err := t.client.Incr(ctx, t.key(key)).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		// First attempt in this window starts the expiry clock.
		if err := t.client.Expire(ctx, t.key(key), t.window).Err(); err != nil {
			return int(count), err
		}
	}
	return int(count), nil
}

func (t *loginThrottle) Reset(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

func (t *loginThrottle) key(id string) string {
	return fmt.Sprintf("%s%s", t.prefix, id)
}
