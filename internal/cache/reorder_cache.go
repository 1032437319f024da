package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/config"
	"github.com/andresuchdata/autopo-forecast/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	reorderKeyPrefix = "forecast:reorder"
	// reorderIndexKey is a set holding every live reorder list key.
	reorderIndexKey = reorderKeyPrefix + ":index"
)

// ReorderKey identifies the batch parameters a cached reorder list was built from.
type ReorderKey struct {
	HorizonDays   int
	CandidatePool int
}

// ReorderCache stores computed reorder lists. InvalidateAll drops every list
// regardless of the parameters it was built with.
type ReorderCache interface {
	GetRecommendations(ctx context.Context, key ReorderKey) ([]domain.ReorderRecommendation, bool, error)
	SetRecommendations(ctx context.Context, key ReorderKey, recs []domain.ReorderRecommendation) error
	InvalidateAll(ctx context.Context) error
}

type redisReorderCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReorderCache struct{}

// NewReorderCache returns a Redis-backed cache, or a noop cache when caching is disabled.
func NewReorderCache(cfg config.CacheConfig) (ReorderCache, error) {
	if !cfg.Enabled {
		return &noopReorderCache{}, nil
	}

	client, ttl, err := connectRedis(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReorderCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReorderCache() ReorderCache {
	return &noopReorderCache{}
}

func (c *redisReorderCache) GetRecommendations(ctx context.Context, key ReorderKey) ([]domain.ReorderRecommendation, bool, error) {
	payload, err := c.client.Get(ctx, buildReorderKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var recs []domain.ReorderRecommendation
	if err := json.Unmarshal(payload, &recs); err != nil {
		return nil, false, fmt.Errorf("decode reorder cache: %w", err)
	}

	return recs, true, nil
}

func (c *redisReorderCache) SetRecommendations(ctx context.Context, key ReorderKey, recs []domain.ReorderRecommendation) error {
	payload, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode reorder cache: %w", err)
	}

	return setIndexed(ctx, c.client, reorderIndexKey, buildReorderKey(key), payload, c.ttl)
}

func (c *redisReorderCache) InvalidateAll(ctx context.Context) error {
	return dropIndexed(ctx, c.client, reorderIndexKey)
}

func (n *noopReorderCache) GetRecommendations(ctx context.Context, key ReorderKey) ([]domain.ReorderRecommendation, bool, error) {
	return nil, false, nil
}

func (n *noopReorderCache) SetRecommendations(ctx context.Context, key ReorderKey, recs []domain.ReorderRecommendation) error {
	return nil
}

func (n *noopReorderCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReorderKey(key ReorderKey) string {
	raw := fmt.Sprintf("horizon=%d|pool=%d", key.HorizonDays, key.CandidatePool)
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", reorderKeyPrefix, hex.EncodeToString(sum[:]))
}
