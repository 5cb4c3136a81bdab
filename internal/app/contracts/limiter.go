package contracts

import (
	"context"
	"time"
)

type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// ResourceLimiter counts hits per group and resource inside fixed windows.
type ResourceLimiter interface {
	Allow(ctx context.Context, group, resource string, window time.Duration, quota int) (*LimitResult, error)
}
