package websocket

import (
	"context"

	"mentorship-system/internal/model"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/redis"

	"go.uber.org/zap"
)

// Presence 在线状态查询
// 启用Redis时读取跨实例的在线记录，否则只看本实例的连接
type Presence struct {
	hub *Manager
}

func NewPresence(hub *Manager) *Presence {
	return &Presence{hub: hub}
}

// IsOnline 账号是否在线；Redis查询失败时退回本实例
func (p *Presence) IsOnline(ctx context.Context, role model.Role, id uint) bool {
	if redis.Enabled() {
		online, err := redis.IsOnline(ctx, ClientKey(role, id))
		if err == nil {
			return online
		}
		logger.Warn("查询在线状态失败", zap.Error(err))
	}
	return p.hub.IsOnline(role, id)
}

// OnlineCount 在线账号数
func (p *Presence) OnlineCount(ctx context.Context) (int, error) {
	if redis.Enabled() {
		accounts, err := redis.OnlineAccounts(ctx)
		if err != nil {
			return 0, err
		}
		return len(accounts), nil
	}
	return p.hub.OnlineCount(), nil
}
