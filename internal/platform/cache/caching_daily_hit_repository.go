// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"codex_backend/internal/feature/insights/domain/entity"
	"codex_backend/internal/feature/insights/usecase"
)

// CachingDailyHitRepository decorates a DailyHitRepository with a Redis read-through cache.
// Generated entries are written with SETNX and overrides with SET, so a racing
// generation can never replace a cached override.
type CachingDailyHitRepository struct {
	inner     usecase.DailyHitRepository
	rdb       *redis.Client
	namespace string
	now       func() time.Time

	invalidateDelay time.Duration
	schedule        func(d time.Duration, f func())
}

const (
	defaultInvalidateDelay = 2 * time.Second
	invalidateTimeout      = 3 * time.Second
)

var _ usecase.DailyHitRepository = (*CachingDailyHitRepository)(nil)

// NewCachingDailyHitRepository decorates a DailyHitRepository with Redis caching.
// A nil client disables caching. If namespace is empty, it uses "dailyhit".
func NewCachingDailyHitRepository(rdb *redis.Client, inner usecase.DailyHitRepository, namespace string) *CachingDailyHitRepository {
	if namespace == "" {
		namespace = "dailyhit"
	}
	return &CachingDailyHitRepository{
		inner:     inner,
		rdb:       rdb,
		namespace: namespace,
		now:       time.Now,

		invalidateDelay: defaultInvalidateDelay,
		schedule:        func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// cachedDailyHit is the JSON payload stored in Redis.
type cachedDailyHit struct {
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"`
	InsightIDs []string  `json:"insight_ids"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Find checks the cache first, then falls back to the database and fills the cache.
func (c *CachingDailyHitRepository) Find(ctx context.Context, userID, date string) (*entity.DailyHit, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Find(ctx, userID, date)
	}

	key := c.cacheKey(userID, date)

	// 1) Check cache
	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil && len(b) > 0:
		if hit, derr := decode(b); derr == nil {
			return hit, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	case err != nil && !errors.Is(err, redis.Nil):
		slog.Warn("daily hit cache read failed", "error", err, "key", key)
	}

	// 2) Fallback to database
	hit, err := c.inner.Find(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	// 3) Fill (best effort, never replaces an existing value)
	c.fill(ctx, hit)
	return hit, nil
}

// InsertIfAbsent writes through to the database and caches the stored winner.
func (c *CachingDailyHitRepository) InsertIfAbsent(ctx context.Context, hit *entity.DailyHit) (*entity.DailyHit, error) {
	stored, err := c.inner.InsertIfAbsent(ctx, hit)
	if err != nil {
		return nil, err
	}
	if c.rdb != nil {
		c.fill(ctx, stored)
	}
	return stored, nil
}

// Override writes through to the database and replaces the cached value.
// If the cache write fails the key is deleted so the next read reloads from the database,
// and deleted once more after invalidateDelay to drop a stale fill that raced the first delete.
func (c *CachingDailyHitRepository) Override(ctx context.Context, hit *entity.DailyHit) error {
	if err := c.inner.Override(ctx, hit); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}

	key := c.cacheKey(hit.UserID, hit.Date)
	ttl, err := c.ttl(hit.Date)
	if err == nil && ttl > 0 {
		if b, merr := encode(hit); merr == nil {
			if err = c.rdb.Set(ctx, key, b, ttl).Err(); err == nil {
				return nil
			}
			slog.Warn("daily hit cache override write failed", "error", err, "key", key)
			// SETに失敗した場合、override前の行を読んだ生成処理がDEL後にSETNXする可能性があるため、少し遅れてもう一度削除する
			c.schedule(c.invalidateDelay, func() {
				delCtx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
				defer cancel()
				c.invalidate(delCtx, key)
			})
		}
	}
	c.invalidate(ctx, key)
	return nil
}

func (c *CachingDailyHitRepository) invalidate(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.Error("daily hit cache invalidation failed", "error", err, "key", key)
	}
}

func (c *CachingDailyHitRepository) fill(ctx context.Context, hit *entity.DailyHit) {
	if hit.Empty() {
		return
	}
	ttl, err := c.ttl(hit.Date)
	if err != nil || ttl <= 0 {
		return
	}
	b, err := encode(hit)
	if err != nil {
		return
	}
	key := c.cacheKey(hit.UserID, hit.Date)
	if err := c.rdb.SetNX(ctx, key, b, ttl).Err(); err != nil {
		slog.Warn("daily hit cache fill failed", "error", err, "key", key)
	}
}

// ttl keeps entries until the end of the key's UTC day.
func (c *CachingDailyHitRepository) ttl(date string) (time.Duration, error) {
	return TimeUntilEndOfDay(date, c.now())
}

// cacheKey generates a cache key for a (user, date) pair.
func (c *CachingDailyHitRepository) cacheKey(userID, date string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(userID), safe(date))
}

func encode(hit *entity.DailyHit) ([]byte, error) {
	return json.Marshal(cachedDailyHit{
		UserID:     hit.UserID,
		Date:       hit.Date,
		InsightIDs: hit.InsightIDs,
		Status:     string(hit.Status),
		CreatedAt:  hit.CreatedAt,
	})
}

func decode(b []byte) (*entity.DailyHit, error) {
	var v cachedDailyHit
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	status, err := entity.ParseDailyHitStatus(v.Status)
	if err != nil {
		return nil, err
	}
	if len(v.InsightIDs) == 0 {
		return nil, errors.New("cached daily hit has no insights")
	}
	return &entity.DailyHit{
		UserID:     v.UserID,
		Date:       v.Date,
		InsightIDs: v.InsightIDs,
		Status:     status,
		CreatedAt:  v.CreatedAt,
	}, nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
