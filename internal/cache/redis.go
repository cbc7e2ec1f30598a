package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/fitstudio/config"
	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the list of bookable classes. Entries expire after
// classesTTL and are dropped whenever a booking changes capacity.
//
// Every invalidation bumps a generation counter. A refill carries the
// generation read before the store was queried and is discarded if the
// counter moved in between, so a list read before a booking committed can
// never overwrite the invalidation that booking made.
type RedisCache struct {
	client     *redis.Client
	classesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, classesTTL time.Duration) *RedisCache {
	return newRedisCache(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), classesTTL)
}

func newRedisCache(client *redis.Client, classesTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, classesTTL: classesTTL}
}

// GetClasses returns nil, nil on a cache miss.
func (c *RedisCache) GetClasses(ctx context.Context) ([]domain.ClassSession, error) {
	data, err := c.client.Get(ctx, classesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var classes []domain.ClassSession
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// ClassesGeneration returns the current invalidation counter. A missing
// counter reads as zero.
func (c *RedisCache) ClassesGeneration(ctx context.Context) (int64, error) {
	return readGeneration(ctx, c.client)
}

// SetClasses stores classes only if no invalidation happened since
// generation was read. A lost race is not an error.
func (c *RedisCache) SetClasses(ctx context.Context, classes []domain.ClassSession, generation int64) error {
	payload, err := json.Marshal(classes)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, classesKey(), payload, c.classesTTL)
			return nil
		})
		return err
	}, generationKey())
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisCache) InvalidateClasses(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey())
		pipe.Del(ctx, classesKey())
		return nil
	})
	return err
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter) (int64, error) {
	generation, err := cmd.Get(ctx, generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

func classesKey() string {
	return "cache:classes:bookable"
}

func generationKey() string {
	return "cache:classes:generation"
}
