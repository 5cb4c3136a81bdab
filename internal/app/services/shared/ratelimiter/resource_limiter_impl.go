package ratelimiter

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/pkg/constvars"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultWindow = time.Minute

type resourceLimiter struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
	now             func() time.Time
}

var (
	resourceLimiterInstance contracts.ResourceLimiter
	onceResourceLimiter     sync.Once
)

func NewResourceLimiter(redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.ResourceLimiter {
	onceResourceLimiter.Do(func() {
		resourceLimiterInstance = &resourceLimiter{
			RedisRepository: redisRepository,
			Log:             logger,
			now:             time.Now,
		}
	})
	return resourceLimiterInstance
}

// Allow increments the counter of the current window for group and
// resource. A quota of zero or less disables the limit.
func (l *resourceLimiter) Allow(ctx context.Context, group, resource string, window time.Duration, quota int) (*contracts.LimitResult, error) {
	if quota <= 0 {
		return &contracts.LimitResult{Allowed: true}, nil
	}
	if window < time.Second {
		window = defaultWindow
	}

	group = strings.ToLower(strings.TrimSpace(group))
	resource = strings.ToLower(strings.TrimSpace(resource))
	if group == "" || resource == "" {
		return &contracts.LimitResult{Allowed: false, RetryAfter: window}, nil
	}

	windowSeconds := int64(window / time.Second)
	now := l.now().UTC()
	windowID := now.Unix() / windowSeconds
	key := fmt.Sprintf(constvars.RedisKeyRateLimit, group, resource, windowID)

	count, err := l.RedisRepository.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.Log.Error("resourceLimiter.Allow increment failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, err
	}

	if count > int64(quota) {
		nextWindow := time.Unix((windowID+1)*windowSeconds, 0)
		return &contracts.LimitResult{Allowed: false, RetryAfter: nextWindow.Sub(now)}, nil
	}
	return &contracts.LimitResult{Allowed: true}, nil
}
