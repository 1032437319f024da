package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	defaultReorderTTL = 5 * time.Minute
	redisPingTimeout  = 5 * time.Second
)

// connectRedis opens a client from the cache config and checks it with a PING.
// The returned TTL is the reorder list expiry.
func connectRedis(cfg config.CacheConfig) (*redis.Client, time.Duration, error) {
	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, 0, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, 0, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := defaultReorderTTL
	if cfg.ReorderTTLSeconds > 0 {
		ttl = time.Duration(cfg.ReorderTTLSeconds) * time.Second
	}

	return client, ttl, nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// setIndexed stores value under key and records key in the index set, so the
// whole family can be dropped without a SCAN. The index lives as long as its
// newest member.
func setIndexed(ctx context.Context, client *redis.Client, indexKey, key string, value []byte, ttl time.Duration) error {
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, value, ttl)
		pipe.SAdd(ctx, indexKey, key)
		pipe.Expire(ctx, indexKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// dropIndexed unlinks every key recorded in the index set, then the index itself.
func dropIndexed(ctx context.Context, client *redis.Client, indexKey string) error {
	keys, err := client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("redis index read failed: %w", err)
	}

	keys = append(keys, indexKey)
	if err := client.Unlink(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis unlink failed: %w", err)
	}
	return nil
}
