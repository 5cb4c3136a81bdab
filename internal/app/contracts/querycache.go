package contracts

import (
	"context"
	"time"
)

type QueryCache interface {
	// Fetch fills out from the cache entry for namespace and params. On a
	// miss loader fills out and the result is stored for ttl.
	Fetch(ctx context.Context, namespace string, params map[string]string, ttl time.Duration, out interface{}, loader func(ctx context.Context) error) error
	Invalidate(ctx context.Context, namespaces ...string)
}
