package websocket

import (
	"fmt"
	"sync"

	"mentorship-system/internal/model"

	"github.com/gorilla/websocket"
)

// Client 代表一个账号的WebSocket连接
// Key: 账号标识（role:id）
// Send: 待发送消息的通道
type Client struct {
	Key  string
	Conn *websocket.Conn
	Send chan []byte
}

// Manager 管理所有在线账号的WebSocket连接，并发安全
// 推送为尽力而为：账号不在线或发送队列已满时直接丢弃
type Manager struct {
	clients map[string]*Client
	lock    sync.RWMutex
}

var manager = NewManager()

// NewManager 创建连接管理器
func NewManager() *Manager {
	return &Manager{clients: make(map[string]*Client)}
}

// GetManager 获取全局WebSocket管理器
func GetManager() *Manager {
	return manager
}

// ClientKey 账号标识，学生与导师的ID空间相互独立
func ClientKey(role model.Role, id uint) string {
	return fmt.Sprintf("%s:%d", role, id)
}

// AddClient 添加新连接；同一账号的旧连接会被关闭
// 关闭底层连接使旧的读循环退出，旧连接此后不会再写入发送队列
func (m *Manager) AddClient(client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if old, ok := m.clients[client.Key]; ok {
		close(old.Send)
		if old.Conn != nil {
			_ = old.Conn.Close()
		}
	}
	m.clients[client.Key] = client
}

// RemoveClient 移除连接（仅当仍是当前登记的连接时）
func (m *Manager) RemoveClient(client *Client) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	if current, ok := m.clients[client.Key]; ok && current == client {
		close(current.Send)
		delete(m.clients, client.Key)
		return true
	}
	return false
}

// SendToAccount 推送消息给指定账号，返回是否已投递到发送队列
func (m *Manager) SendToAccount(role model.Role, id uint, msg []byte) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	client, ok := m.clients[ClientKey(role, id)]
	if !ok {
		return false
	}
	select {
	case client.Send <- msg:
		return true
	default:
		// 发送队列已满，可能连接已卡住
		return false
	}
}

// Reply 向指定连接回复消息；连接已被替换或移除时返回false
func (m *Manager) Reply(client *Client, msg []byte) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if current, ok := m.clients[client.Key]; !ok || current != client {
		return false
	}
	select {
	case client.Send <- msg:
		return true
	default:
		return false
	}
}

// IsOnline 判断账号是否在线
func (m *Manager) IsOnline(role model.Role, id uint) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[ClientKey(role, id)]
	return ok
}

// OnlineCount 在线连接数
func (m *Manager) OnlineCount() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.clients)
}
