package websocket

import (
	"sync"
	"testing"

	"mentorship-system/internal/model"

	"github.com/stretchr/testify/assert"
)

func newClient(role model.Role, id uint, buf int) *Client {
	return &Client{Key: ClientKey(role, id), Send: make(chan []byte, buf)}
}

func TestClientKeySeparatesRoles(t *testing.T) {
	assert.Equal(t, "user:1", ClientKey(model.RoleUser, 1))
	assert.NotEqual(t, ClientKey(model.RoleUser, 1), ClientKey(model.RoleMentor, 1))
}

func TestSendToAccount(t *testing.T) {
	m := NewManager()
	c := newClient(model.RoleMentor, 42, 1)
	m.AddClient(c)

	assert.True(t, m.IsOnline(model.RoleMentor, 42))
	assert.False(t, m.IsOnline(model.RoleUser, 42))

	assert.True(t, m.SendToAccount(model.RoleMentor, 42, []byte("a")))
	// 队列已满时丢弃
	assert.False(t, m.SendToAccount(model.RoleMentor, 42, []byte("b")))
	assert.False(t, m.SendToAccount(model.RoleUser, 42, []byte("c")))
	assert.Equal(t, []byte("a"), <-c.Send)
}

func TestReplacedClientIsClosedAndKept(t *testing.T) {
	m := NewManager()
	old := newClient(model.RoleUser, 1, 1)
	fresh := newClient(model.RoleUser, 1, 1)
	m.AddClient(old)
	m.AddClient(fresh)

	_, open := <-old.Send
	assert.False(t, open)

	// 旧连接退出时不影响新连接
	assert.False(t, m.RemoveClient(old))
	assert.True(t, m.IsOnline(model.RoleUser, 1))

	assert.True(t, m.RemoveClient(fresh))
	assert.Equal(t, 0, m.OnlineCount())
}

func TestConcurrentSendAndRemove(t *testing.T) {
	m := NewManager()
	c := newClient(model.RoleUser, 1, 1024)
	m.AddClient(c)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.SendToAccount(model.RoleUser, 1, []byte("x"))
			}
		}()
	}
	m.RemoveClient(c)
	wg.Wait()
	assert.False(t, m.IsOnline(model.RoleUser, 1))
}
