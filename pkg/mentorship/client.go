package mentorship

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseBytes 响应体读取上限
const maxResponseBytes = 4 << 20

// Client 导师申请REST客户端，可并发使用
type Client struct {
	baseURL string
	store   TokenStore
	http    *http.Client
	log     *zap.Logger
	now     func() time.Time
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 自定义HTTP客户端（超时、代理等）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger 列表查询失败时的告警日志，默认不输出
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock 面板统计使用的当前时间
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient 创建客户端；store 为空时使用未登录的 MemoryStore
func NewClient(baseURL string, store TokenStore, opts ...Option) *Client {
	if store == nil {
		store = NewMemoryStore("", "")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store 当前令牌存储
func (c *Client) Store() TokenStore {
	return c.store
}

// do 发起一次请求
// auth 为 true 时必须有令牌，否则直接返回 ErrUnauthenticated
// 非2xx响应转为 *RequestError；out 非空时解析成功响应
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, auth bool) error {
	var token string
	if auth {
		t, ok := c.store.GetToken()
		if !ok {
			return ErrUnauthenticated
		}
		token = t
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mentorship: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("mentorship: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{StatusCode: resp.StatusCode, Detail: parseDetail(raw, resp.StatusCode)}
	}
	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &RequestError{StatusCode: resp.StatusCode, Detail: "invalid response body", cause: err}
		}
	}
	return nil
}

// parseDetail 提取错误信息
// detail 为字符串时原样返回；为字段错误列表时返回 "字段: 信息"（取第一项）
func parseDetail(raw []byte, status int) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			return s
		}
		var list []struct {
			Loc []interface{} `json:"loc"`
			Msg string        `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &list); err == nil && len(list) > 0 {
			first := list[0]
			if len(first.Loc) == 0 {
				return first.Msg
			}
			return fmt.Sprintf("%v: %s", first.Loc[len(first.Loc)-1], first.Msg)
		}
	}
	return http.StatusText(status)
}

// rolePath 角色对应的认证路由前缀
func rolePath(role Role) string {
	return "/auth/" + string(role) + "s"
}
