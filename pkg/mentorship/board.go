package mentorship

import (
	"context"
	"sync"
)

// BoardKind 列表类型
type BoardKind string

const (
	Incoming BoardKind = "incoming"
	Outgoing BoardKind = "outgoing"
)

// Board 某个视图持有的申请列表（顺序即获取顺序）
// 变更操作先调用后端，成功后才修改本地状态；失败时列表保持不变
type Board struct {
	client *Client
	kind   BoardKind

	mu    sync.RWMutex
	items []Request
}

// NewBoard 创建空列表，需调用 Refresh 加载
func (c *Client) NewBoard(kind BoardKind) *Board {
	return &Board{client: c, kind: kind, items: []Request{}}
}

// Kind 列表类型
func (b *Board) Kind() BoardKind {
	return b.kind
}

// Refresh 重新获取并整体替换本地列表
func (b *Board) Refresh(ctx context.Context) []Request {
	var fresh []Request
	if b.kind == Incoming {
		fresh = b.client.ListIncoming(ctx)
	} else {
		fresh = b.client.ListOutgoing(ctx)
	}
	b.mu.Lock()
	b.items = fresh
	b.mu.Unlock()
	return b.Items()
}

// Items 当前列表的副本
func (b *Board) Items() []Request {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Request, len(b.items))
	copy(out, b.items)
	return out
}

// Get 按ID查找
func (b *Board) Get(id uint) (Request, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, r := range b.items {
		if r.ID == id {
			return r, true
		}
	}
	return Request{}, false
}

// Accept 同意
func (b *Board) Accept(ctx context.Context, id uint) error {
	confirmed, err := b.client.transition(ctx, "/requests/approve/", id)
	if err != nil {
		return err
	}
	b.apply(id, StatusAccepted, confirmed)
	return nil
}

// Reject 拒绝
func (b *Board) Reject(ctx context.Context, id uint) error {
	confirmed, err := b.client.transition(ctx, "/requests/reject/", id)
	if err != nil {
		return err
	}
	b.apply(id, StatusRejected, confirmed)
	return nil
}

// Cancel 撤回
func (b *Board) Cancel(ctx context.Context, id uint) error {
	return b.Reject(ctx, id)
}

// apply 应用后端已确认的状态变更；终态不会被再次修改
func (b *Board) apply(id uint, next Status, confirmed *Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		item := &b.items[i]
		if item.ID != id {
			continue
		}
		if !item.Status.CanTransitionTo(next) {
			return
		}
		item.Status = next
		if confirmed != nil && !confirmed.UpdatedAt.IsZero() {
			item.UpdatedAt = confirmed.UpdatedAt
		}
		return
	}
}
