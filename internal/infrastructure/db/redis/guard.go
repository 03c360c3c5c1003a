package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// defaultGuardTTL bounds how long a crashed holder can block an action.
const defaultGuardTTL = 2 * time.Minute

// releaseScript deletes the lock only if it still carries the holder's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// InflightGuard rejects duplicate concurrent actions across every instance
// sharing the Redis database.
// Key format: inflight:<action>:<candidate_id>[:<recipient>]
type InflightGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewInflightGuard(client *redis.Client, ttl time.Duration) *InflightGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &InflightGuard{client: client, ttl: ttl}
}

func (g *InflightGuard) Acquire(ctx context.Context, key string) (func(), error) {
	k := "inflight:" + key
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, k, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("inflight acquire: %w", err)
	}
	if !ok {
		return nil, domain.ErrActionInFlight
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		_ = releaseScript.Run(ctx, g.client, []string{k}, token).Err()
	}, nil
}
