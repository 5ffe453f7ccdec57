package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const freeCountKey = "seats:free"

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// SeatCache は空席数のキャッシュを管理する
type SeatCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeatCache は新しいSeatCacheインスタンスを作成する
func NewSeatCache(client *redis.Client, ttl time.Duration) *SeatCache {
	return &SeatCache{client: client, ttl: ttl}
}

// GetFreeCount は空席数をキャッシュから取得する
func (c *SeatCache) GetFreeCount(ctx context.Context) (int, error) {
	val, err := c.client.Get(ctx, freeCountKey).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// SetFreeCount は空席数をキャッシュに保存する
func (c *SeatCache) SetFreeCount(ctx context.Context, count int) error {
	if err := c.client.Set(ctx, freeCountKey, count, c.ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は空席数のキャッシュを無効化する
func (c *SeatCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, freeCountKey).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

// IsCacheMiss はキャッシュミスかどうか
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}
