package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/bookcommunity/pkg/apperror"
	"github.com/google/uuid"
)

func TestCooldownWithoutRedisAlwaysAllows(t *testing.T) {
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		release, err := Cooldown(context.Background(), nil, userID, ScopeComment, 15*time.Second)
		if err != nil {
			t.Fatalf("attempt %d: unexpected error %v", i, err)
		}
		release()
	}
}

func TestRateLimitErrorUnwrapsToSentinel(t *testing.T) {
	err := &RateLimitError{Message: "slow down", RetryAfter: 3 * time.Second}

	if !errors.Is(err, apperror.ErrRateLimitExceeded) {
		t.Fatal("RateLimitError should unwrap to ErrRateLimitExceeded")
	}
	if got := apperror.MapErrorToStatus(err); got != 429 {
		t.Errorf("status = %d, want 429", got)
	}
	if err.Error() != "slow down" {
		t.Errorf("message = %q", err.Error())
	}
}
