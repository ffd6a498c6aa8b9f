package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vocabstudent/backend/internal/models"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "enrichment:"

// Cache is the subset of the Redis client used by CachedGenerator
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedGenerator serves enrichments from Redis and falls back to another Generator
//
// Cache failures never fail a generation.
type CachedGenerator struct {
	next   Generator
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedGenerator wraps a generator with a Redis cache
func NewCachedGenerator(next Generator, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedGenerator {
	return &CachedGenerator{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Generate returns the cached enrichment of a term or generates and caches it
func (g *CachedGenerator) Generate(ctx context.Context, term string) (models.Enrichment, error) {
	key := cacheKey(term)

	cached, err := g.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var enrichment models.Enrichment
		if err := json.Unmarshal([]byte(cached), &enrichment); err == nil {
			return enrichment, nil
		}
		g.logger.Warn("invalid cached enrichment", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		g.logger.Warn("failed to read enrichment cache", zap.String("key", key), zap.Error(err))
	}

	enrichment, err := g.next.Generate(ctx, term)
	if err != nil {
		return models.Enrichment{}, err
	}

	data, err := json.Marshal(enrichment)
	if err != nil {
		g.logger.Warn("failed to encode enrichment", zap.Error(err))
		return enrichment, nil
	}
	if err := g.cache.Set(ctx, key, data, g.ttl).Err(); err != nil {
		g.logger.Warn("failed to write enrichment cache", zap.String("key", key), zap.Error(err))
	}

	return enrichment, nil
}

// GenerateCategory is not cached
func (g *CachedGenerator) GenerateCategory(ctx context.Context, term string) (string, error) {
	return g.next.GenerateCategory(ctx, term)
}

func cacheKey(term string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(term))
}
