// cache — опциональный Redis-кэш трендовой выдачи.
// Кэш сбрасывается при ЛЮБОЙ мутации статьи (лайк/комментарий/просмотр/
// approve/reject/правка/удаление); короткий TTL — страховка на случай
// пропущенной инвалидации.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
)

const trendingKey = "blogs:trending"

// TrendingCache — минимальный контракт кэша трендовой выдачи.
type TrendingCache interface {
	// Get возвращает закэшированную выдачу и признак её наличия.
	Get(ctx context.Context) ([]models.TrendingBlog, bool, error)
	// Set сохраняет выдачу с TTL.
	Set(ctx context.Context, items []models.TrendingBlog, ttl time.Duration) error
	// Invalidate сбрасывает ключ.
	Invalidate(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb *redis.Client
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
func NewRedisCache(redisURL string) (TrendingCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb}, nil
}

func (c *redisCache) Get(ctx context.Context) ([]models.TrendingBlog, bool, error) {
	raw, err := c.rdb.Get(ctx, trendingKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, err
	}

	var items []models.TrendingBlog
	if err := json.Unmarshal(raw, &items); err != nil {
		// Битое содержимое считаем промахом.
		return nil, false, nil
	}

	return items, true, nil
}

func (c *redisCache) Set(ctx context.Context, items []models.TrendingBlog, ttl time.Duration) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, trendingKey, raw, ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, trendingKey).Err()
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}
