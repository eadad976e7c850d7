package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"anoa.com/bookcommunity/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const ScopeComment = "comment"

// RateLimitError reports a cooldown that is still running.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

func key(userID uuid.UUID, scope string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), scope)
}

// CheckAndSetRateLimit claims the cooldown slot for userID in scope. It
// returns false while a previous slot is still alive. A nil client disables
// limiting.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID uuid.UUID, scope string, limit time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	wasSet, err := rdb.SetNX(ctx, key(userID, scope), "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, userID uuid.UUID, scope string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	return rdb.TTL(ctx, key(userID, scope)).Result()
}

func ClearRateLimit(ctx context.Context, rdb *redis.Client, userID uuid.UUID, scope string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, key(userID, scope)).Err()
}

// Cooldown claims the slot and converts a refusal into a RateLimitError.
// The returned release func frees the slot when the guarded write fails.
func Cooldown(ctx context.Context, rdb *redis.Client, userID uuid.UUID, scope string, limit time.Duration) (func(), error) {
	allowed, err := CheckAndSetRateLimit(ctx, rdb, userID, scope, limit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, rdb, userID, scope)
		if ttl < 0 {
			ttl = limit
		}
		return nil, &RateLimitError{
			Message:    fmt.Sprintf("you are doing that too fast. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	return func() {
		_ = ClearRateLimit(context.WithoutCancel(ctx), rdb, userID, scope)
	}, nil
}
