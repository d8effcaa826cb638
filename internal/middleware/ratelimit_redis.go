package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter общий счётчик для нескольких инстансов API
type RedisLimiter struct {
	client *redis.Client
	rpm    int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client *redis.Client, rpm int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		rpm:    rpm,
		window: window,
		prefix: "kanban:ratelimit:",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis incr: %w", err)
	}

	// первый запрос в окне ставит срок жизни счётчика
	if count == 1 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("redis pexpire: %w", err)
		}
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis pttl: %w", err)
	}
	if ttl < 0 {
		// ключ без срока жизни остался от упавшего запроса
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("redis pexpire: %w", err)
		}
		ttl = l.window
	}

	return Decision{
		Allowed:   count <= int64(l.rpm),
		Limit:     l.rpm,
		Remaining: l.rpm - int(count),
		ResetAt:   time.Now().Add(ttl),
	}, nil
}
