package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"mentorship-system/config"
	"mentorship-system/pkg/jwt"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/redis"
	"mentorship-system/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许跨域，来源由CORS配置约束
	},
}

// NewHandler 创建WebSocket路由处理函数
// 令牌通过 ?token= 或 Sec-WebSocket-Protocol 传入
func NewHandler(m *Manager, jwtSvc *jwt.JWTService, wsCfg config.WebSocketConfig) gin.HandlerFunc {
	if wsCfg.PingInterval <= 0 {
		wsCfg.PingInterval = 30 * time.Second
	}
	if wsCfg.ReadTimeout <= 0 {
		wsCfg.ReadTimeout = 3 * wsCfg.PingInterval
	}
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Sec-WebSocket-Protocol"), "Bearer ")
		}
		if token == "" {
			response.Unauthorized(c, "Not authenticated")
			return
		}

		claims, err := jwtSvc.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "Could not validate credentials")
			return
		}
		accountID, err := claims.AccountID()
		if err != nil || accountID == 0 {
			response.Unauthorized(c, "Could not validate credentials")
			return
		}

		// 回显子协议，避免客户端提示 "Server sent no subprotocol"
		respHeader := http.Header{}
		if protocol := c.GetHeader("Sec-WebSocket-Protocol"); protocol != "" {
			respHeader.Set("Sec-WebSocket-Protocol", protocol)
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, respHeader)
		if err != nil {
			logger.Warn("WebSocket升级失败", zap.Error(err))
			return
		}

		client := &Client{
			Key:  ClientKey(claims.Role(), accountID),
			Conn: conn,
			Send: make(chan []byte, 64),
		}
		m.AddClient(client)
		markPresence(client.Key, true)
		logger.Info("WebSocket连接建立", zap.String("account", client.Key))

		defer func() {
			// 被新连接替换时不改在线状态
			if m.RemoveClient(client) {
				markPresence(client.Key, false)
			}
			_ = conn.Close()
			logger.Info("WebSocket连接关闭", zap.String("account", client.Key))
		}()

		go writePump(client, wsCfg.PingInterval)
		readPump(m, client, wsCfg.ReadTimeout)
	}
}

// writePump 写协程：转发发送队列并定时发送ping心跳
func writePump(client *Client, pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				_ = client.Conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(time.Second))
				return
			}
			_ = client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := client.Conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}

// readPump 读循环：超时未收到任何数据则断开；heartbeat 回复 pong
func readPump(m *Manager, client *Client, readTimeout time.Duration) {
	conn := client.Conn
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		if redis.Enabled() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			_ = redis.RefreshPresence(ctx, client.Key)
			cancel()
		}
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		var msg struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(payload, &msg) == nil && msg.Type == "heartbeat" {
			pong, _ := json.Marshal(map[string]string{"type": "pong"})
			m.Reply(client, pong)
		}
	}
}

// markPresence 在Redis中记录在线状态，未启用Redis时跳过
func markPresence(account string, online bool) {
	if !redis.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var err error
	if online {
		err = redis.SetPresence(ctx, account)
	} else {
		err = redis.RemovePresence(ctx, account)
	}
	if err != nil {
		logger.Warn("更新在线状态失败", zap.String("account", account), zap.Error(err))
	}
}
