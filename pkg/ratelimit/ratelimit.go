package ratelimit

import (
	"context"
	"sync"
	"time"

	"mentorship-system/config"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter 按客户端IP的令牌桶限流
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// New 创建限流器；RequestsPerSecond<=0 时不限流
func New(cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		now:      time.Now,
	}
}

// Enabled 是否启用限流
func (l *Limiter) Enabled() bool {
	return l.limit > 0
}

// Allow 指定IP是否还有令牌
func (l *Limiter) Allow(ip string) bool {
	if !l.Enabled() {
		return true
	}
	return l.get(ip).Allow()
}

func (l *Limiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

// Middleware gin限流中间件，超限返回429
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.Allow(ip) {
			logger.Warn("请求被限流",
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
			)
			response.TooManyRequests(c, "Too many requests")
			return
		}
		c.Next()
	}
}

// Cleanup 定期清理长时间未访问的IP，ctx取消时退出
func (l *Limiter) Cleanup(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evict(maxIdle)
		}
	}
}

func (l *Limiter) evict(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	now := l.now()
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > maxIdle {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}
