package websocket

import (
	"errors"
	"net"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"mentorship-system/config"
	"mentorship-system/internal/model"
	"mentorship-system/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// current 当前登记的连接
func (m *Manager) current(key string) *Client {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.clients[key]
}

func TestReplyToReplacedClientIsDropped(t *testing.T) {
	m := NewManager()
	old := newClient(model.RoleUser, 1, 1)
	fresh := newClient(model.RoleUser, 1, 1)
	m.AddClient(old)
	assert.True(t, m.Reply(old, []byte("pong")))
	<-old.Send

	m.AddClient(fresh)
	// 旧连接的发送队列已关闭，回复不能写入
	assert.NotPanics(t, func() {
		assert.False(t, m.Reply(old, []byte("pong")))
	})
	assert.True(t, m.Reply(fresh, []byte("pong")))

	m.RemoveClient(fresh)
	assert.False(t, m.Reply(fresh, []byte("pong")))
}

func TestHeartbeatAfterReconnect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.GetDefaultConfig()
	cfg.JWT.Secret = "ws-test-secret"
	jwtSvc := jwt.NewJWTService(cfg.JWT)
	token, err := jwtSvc.GenerateAccountToken(7, model.RoleMentor, "bob@example.com")
	require.NoError(t, err)

	var panicked atomic.Bool
	m := NewManager()
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		panicked.Store(true)
	}))
	r.GET("/ws", NewHandler(m, jwtSvc, cfg.WebSocket))
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	key := ClientKey(model.RoleMentor, 7)

	first, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer first.Close()
	require.Eventually(t, func() bool { return m.current(key) != nil }, 2*time.Second, 10*time.Millisecond)
	firstClient := m.current(key)

	second, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer second.Close()
	require.Eventually(t, func() bool {
		c := m.current(key)
		return c != nil && c != firstClient
	}, 2*time.Second, 10*time.Millisecond)

	// 旧连接上的心跳不能导致服务端崩溃
	_ = first.WriteJSON(map[string]string{"type": "heartbeat"})

	require.NoError(t, second.WriteJSON(map[string]string{"type": "heartbeat"}))
	require.NoError(t, second.SetReadDeadline(time.Now().Add(3*time.Second)))
	var frame map[string]string
	require.NoError(t, second.ReadJSON(&frame))
	assert.Equal(t, "pong", frame["type"])

	// 旧连接已被服务端关闭
	require.NoError(t, first.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		if _, _, err := first.ReadMessage(); err != nil {
			var netErr net.Error
			assert.False(t, errors.As(err, &netErr) && netErr.Timeout(), err.Error())
			break
		}
	}

	assert.False(t, panicked.Load())
	assert.True(t, m.IsOnline(model.RoleMentor, 7))
}
