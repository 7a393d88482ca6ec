// Package redislock serializes workflow steps on the same order across
// service instances.
package redislock

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix  = "order-lock:"
	DefaultTTL = 2 * time.Minute

	releaseTimeout = 3 * time.Second
)

// release deletes the key only while it still holds our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ ports.OrderLocker = &Locker{}

type Locker struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewClient connects to redis://[:password@]host[:port][/database].
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewLocker holds locks for ttl at most, so a crashed step cannot block an
// order forever. A zero ttl means DefaultTTL.
func NewLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Locker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Locker{
		client: client,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "redislock")),
	}
}

func (l *Locker) Lock(ctx context.Context, orderID kernel.UUID) (func(), error) {
	key := keyPrefix + orderID.String()
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to lock order %s: %w", orderID, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", errs.ErrOrderLocked, orderID)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := release.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn("order lock not released", zap.String("order_id", orderID.String()), zap.Error(err))
		}
	}, nil
}

// Ping checks if Redis is reachable.
func (l *Locker) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
