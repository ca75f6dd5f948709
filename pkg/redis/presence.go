package redis

import (
	"context"
	"fmt"
	"time"
)

// 在线状态相关常量
const (
	PresenceKeyPrefix = "mentorship:presence:" // 账号在线状态key前缀，后接 role:id
	OnlineAccountsKey = "mentorship:online"    // 在线账号集合key
	PresenceTTL       = 2 * time.Minute        // 在线状态TTL（多实例部署时由心跳续期）
)

func presenceKey(account string) string {
	return PresenceKeyPrefix + account
}

// SetPresence 标记账号在线
func SetPresence(ctx context.Context, account string) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	pipe := client.TxPipeline()
	pipe.Set(ctx, presenceKey(account), time.Now().Unix(), PresenceTTL)
	pipe.SAdd(ctx, OnlineAccountsKey, account)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("设置在线状态失败: %w", err)
	}
	return nil
}

// RefreshPresence 延长在线状态TTL
func RefreshPresence(ctx context.Context, account string) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	ok, err := client.Expire(ctx, presenceKey(account), PresenceTTL).Result()
	if err != nil {
		return fmt.Errorf("刷新在线状态失败: %w", err)
	}
	if !ok {
		return SetPresence(ctx, account)
	}
	return nil
}

// RemovePresence 标记账号离线
func RemovePresence(ctx context.Context, account string) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	pipe := client.TxPipeline()
	pipe.Del(ctx, presenceKey(account))
	pipe.SRem(ctx, OnlineAccountsKey, account)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("移除在线状态失败: %w", err)
	}
	return nil
}

// IsOnline 账号是否在线（跨实例）
func IsOnline(ctx context.Context, account string) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("redis客户端未初始化")
	}
	n, err := client.Exists(ctx, presenceKey(account)).Result()
	if err != nil {
		return false, fmt.Errorf("检查在线状态失败: %w", err)
	}
	return n > 0, nil
}

// OnlineAccounts 在线账号列表，顺带清理已过期的成员
func OnlineAccounts(ctx context.Context) ([]string, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	members, err := client.SMembers(ctx, OnlineAccountsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("获取在线账号失败: %w", err)
	}

	online := make([]string, 0, len(members))
	for _, account := range members {
		alive, err := IsOnline(ctx, account)
		if err != nil {
			return nil, err
		}
		if !alive {
			client.SRem(ctx, OnlineAccountsKey, account)
			continue
		}
		online = append(online, account)
	}
	return online, nil
}
