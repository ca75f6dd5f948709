package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// 推荐流缓存相关常量
const (
	FeedKeyPrefix = "mentorship:feed:" // 推荐流分页缓存key前缀
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("cache miss")

// FeedCacheKey 生成推荐流分页缓存key
// 格式：mentorship:feed:{kind}:{page}:{size}:{search}
func FeedCacheKey(kind string, page, size int, search string) string {
	return fmt.Sprintf("%s%s:%d:%d:%s", FeedKeyPrefix, kind, page, size, strings.ToLower(strings.TrimSpace(search)))
}

// GetCachedFeed 读取缓存的分页数据到out
func GetCachedFeed(ctx context.Context, key string, out interface{}) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("获取推荐流缓存失败: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("反序列化推荐流缓存失败: %w", err)
	}
	return nil
}

// CacheFeed 缓存分页数据
func CacheFeed(ctx context.Context, key string, page interface{}, ttl time.Duration) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("序列化推荐流失败: %w", err)
	}

	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("缓存推荐流失败: %w", err)
	}
	return nil
}

// InvalidateFeed 删除某类推荐流的全部分页缓存（资料变更或新注册时调用）
func InvalidateFeed(ctx context.Context, kind string) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	// 使用 SCAN 非阻塞地遍历 key
	var keys []string
	var cursor uint64
	pattern := fmt.Sprintf("%s%s:*", FeedKeyPrefix, kind)
	for {
		ks, next, err := client.Scan(ctx, cursor, pattern, 500).Result()
		if err != nil {
			return fmt.Errorf("扫描推荐流缓存失败: %w", err)
		}
		keys = append(keys, ks...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("删除推荐流缓存失败: %w", err)
	}
	return nil
}
