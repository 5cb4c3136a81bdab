package querycache

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/monitoring"
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	queryCacheInstance contracts.QueryCache
	onceQueryCache     sync.Once
)

// queryCache is a read-through JSON cache over redis. Every namespace owns a
// generation counter that is part of each key, so bumping the counter drops
// all keys of the namespace at once and stale entries simply expire.
type queryCache struct {
	redisRepo contracts.RedisRepository
	Metrics   *monitoring.MetricsCollector
	Log       *zap.Logger
}

func NewQueryCache(redisRepo contracts.RedisRepository, metrics *monitoring.MetricsCollector, logger *zap.Logger) contracts.QueryCache {
	onceQueryCache.Do(func() {
		queryCacheInstance = &queryCache{
			redisRepo: redisRepo,
			Metrics:   metrics,
			Log:       logger,
		}
	})
	return queryCacheInstance
}

func (c *queryCache) Fetch(ctx context.Context, namespace string, params map[string]string, ttl time.Duration, out interface{}, loader func(ctx context.Context) error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	generation, err := c.redisRepo.GetInt(ctx, GenerationKey(namespace))
	if err != nil {
		c.Log.Warn("queryCache.Fetch error reading generation, bypassing cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheNamespaceKey, namespace),
			zap.Error(err),
		)
		return loader(ctx)
	}

	key := BuildKey(namespace, generation, params)
	cached, err := c.redisRepo.Get(ctx, key)
	if err != nil {
		c.Log.Warn("queryCache.Fetch error reading entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
	}
	if cached != "" {
		if err := json.Unmarshal([]byte(cached), out); err == nil {
			c.recordLookup(namespace, true)
			c.Log.Debug("queryCache.Fetch hit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCacheKey, key),
				zap.Bool(constvars.LoggingCacheHitKey, true),
			)
			return nil
		}
		c.Log.Warn("queryCache.Fetch discarding undecodable entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
		)
	}

	c.recordLookup(namespace, false)
	if err := loader(ctx); err != nil {
		return err
	}

	if err := c.redisRepo.Set(ctx, key, out, ttl); err != nil {
		c.Log.Warn("queryCache.Fetch error storing entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, key),
			zap.Error(err),
		)
	}
	c.Log.Debug("queryCache.Fetch miss",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCacheKey, key),
		zap.Bool(constvars.LoggingCacheHitKey, false),
	)
	return nil
}

// Invalidate never fails the caller; a counter that could not be bumped only
// means entries live until their TTL.
func (c *queryCache) Invalidate(ctx context.Context, namespaces ...string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	for _, namespace := range namespaces {
		if _, err := c.redisRepo.Increment(ctx, GenerationKey(namespace)); err != nil {
			c.Log.Warn("queryCache.Invalidate error bumping generation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCacheNamespaceKey, namespace),
				zap.Error(err),
			)
			continue
		}
		c.Log.Info("queryCache.Invalidate namespace invalidated",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheNamespaceKey, namespace),
		)
	}
}

func (c *queryCache) recordLookup(namespace string, hit bool) {
	if c.Metrics != nil {
		c.Metrics.RecordCacheLookup(namespace, hit)
	}
}

func GenerationKey(namespace string) string {
	return fmt.Sprintf("%s:%s", constvars.CacheGenerationPrefix, namespace)
}

// BuildKey renders qc:<namespace>:g<generation>:<params>, params sorted by
// name so equal parameter sets always map to the same key.
func BuildKey(namespace string, generation int64, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, url.QueryEscape(name)+"="+url.QueryEscape(params[name]))
	}
	return fmt.Sprintf("%s:%s:g%d:%s", constvars.CacheKeyPrefix, namespace, generation, strings.Join(pairs, "&"))
}
