package mentorship

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// activeRequestPhrases 后端描述“已有进行中申请”时使用的措辞
var activeRequestPhrases = []string{
	"active request",
	"активная заявка",
}

type sendBody struct {
	ReceiverID   uint   `json:"receiver_id"`
	Message      string `json:"message"`
	ReceiverType Role   `json:"receiver_type"`
}

// SendMentorshipRequest 发送申请，返回新建的 pending 申请
func (c *Client) SendMentorshipRequest(ctx context.Context, receiverID uint, message string, receiverType Role) (*Request, error) {
	if !c.store.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if !receiverType.Valid() {
		return nil, ErrInvalidRole
	}

	var created Request
	err := c.do(ctx, http.MethodPost, "/requests/send", nil,
		sendBody{ReceiverID: receiverID, Message: message, ReceiverType: receiverType}, &created, true)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && isActiveRequestConflict(reqErr) {
			reqErr.kind = ErrExistingActiveRequest
		}
		return nil, err
	}
	return &created, nil
}

func isActiveRequestConflict(e *RequestError) bool {
	if e.StatusCode == http.StatusConflict {
		return true
	}
	if e.StatusCode == 0 {
		return false
	}
	detail := strings.ToLower(e.Detail)
	for _, phrase := range activeRequestPhrases {
		if strings.Contains(detail, phrase) {
			return true
		}
	}
	return false
}

// ListOutgoing 我发出的申请；失败时返回空列表
func (c *Client) ListOutgoing(ctx context.Context) []Request {
	return c.list(ctx, "/requests/sent")
}

// ListIncoming 我收到的申请；失败时返回空列表
func (c *Client) ListIncoming(ctx context.Context) []Request {
	return c.list(ctx, "/requests/got")
}

func (c *Client) list(ctx context.Context, path string) []Request {
	var items []Request
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &items, true); err != nil {
		c.log.Warn("获取申请列表失败", zap.String("path", path), zap.Error(err))
		return []Request{}
	}
	if items == nil {
		items = []Request{}
	}
	return items
}

// Accept 接收者同意申请
func (c *Client) Accept(ctx context.Context, id uint) (bool, error) {
	_, err := c.transition(ctx, "/requests/approve/", id)
	return err == nil, err
}

// Reject 接收者拒绝申请
func (c *Client) Reject(ctx context.Context, id uint) (bool, error) {
	_, err := c.transition(ctx, "/requests/reject/", id)
	return err == nil, err
}

// Cancel 发送者撤回申请，后端没有单独的撤回接口，与拒绝共用
func (c *Client) Cancel(ctx context.Context, id uint) (bool, error) {
	_, err := c.transition(ctx, "/requests/reject/", id)
	return err == nil, err
}

// transition 一次后端调用；返回后端确认后的申请（响应体为空时为nil）
func (c *Client) transition(ctx context.Context, prefix string, id uint) (*Request, error) {
	var updated Request
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s%d", prefix, id), nil, nil, &updated, true); err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		return nil, nil
	}
	return &updated, nil
}
