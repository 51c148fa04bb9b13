// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tree

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/stamtavla/internal/platform/constants"
)

// RedisExportCache is the [ExportCache] stored in Redis: the text under one
// key with a TTL, and the generation counter under a second key without one.
type RedisExportCache struct {
	client        redis.UniversalClient
	key           string
	generationKey string
	ttl           time.Duration
}

func NewRedisExportCache(client redis.UniversalClient, ttl time.Duration) *RedisExportCache {
	return &RedisExportCache{
		client:        client,
		key:           constants.RedisKeyGedcomExport,
		generationKey: constants.RedisKeyGedcomExportGeneration,
		ttl:           ttl,
	}
}

func (cache *RedisExportCache) Get(context context.Context) (string, int64, bool, error) {
	values, err := cache.client.MGet(context, cache.key, cache.generationKey).Result()
	if err != nil {
		return "", 0, false, fmt.Errorf("tree: read export cache: %w", err)
	}

	generation, err := parseGeneration(values[1])
	if err != nil {
		return "", 0, false, fmt.Errorf("tree: read export cache: %w", err)
	}
	text, ok := values[0].(string)
	return text, generation, ok, nil
}

// Set writes under WATCH, so an Invalidate landing between the generation
// read and the write aborts it.
func (cache *RedisExportCache) Set(context context.Context, generation int64, text string) error {
	err := cache.client.Watch(context, func(tx *redis.Tx) error {
		current, err := tx.Get(context, cache.generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Set(context, cache.key, text, cache.ttl)
			return nil
		})
		return err
	}, cache.generationKey)

	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("tree: write export cache: %w", err)
	}
	return nil
}

func (cache *RedisExportCache) Invalidate(context context.Context) error {
	_, err := cache.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Incr(context, cache.generationKey)
		pipe.Del(context, cache.key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("tree: invalidate export cache: %w", err)
	}
	return nil
}

func parseGeneration(value any) (int64, error) {
	text, ok := value.(string)
	if !ok {
		return 0, nil
	}
	return strconv.ParseInt(text, 10, 64)
}
