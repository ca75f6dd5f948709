package mentorship

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated 本地没有令牌，未发起网络请求
	ErrUnauthenticated = errors.New("mentorship: not authenticated")
	// ErrExistingActiveRequest 已存在对该接收者的进行中申请
	ErrExistingActiveRequest = errors.New("mentorship: an active request to this receiver already exists")
	// ErrEmptyMessage 申请留言为空
	ErrEmptyMessage = errors.New("mentorship: message must not be empty")
	// ErrInvalidRole 非法角色
	ErrInvalidRole = errors.New("mentorship: invalid role")
	// ErrRequestFailed 后端返回非成功状态
	ErrRequestFailed = errors.New("mentorship: request failed")
	// ErrTransport 网络或传输层错误
	ErrTransport = errors.New("mentorship: network or transport error")
)

// transportDetail 传输失败时对外展示的信息
const transportDetail = "network error, please check your connection"

// RequestError 后端请求失败
// StatusCode 为0表示请求未得到HTTP响应；Detail 为后端返回的 detail 原文
type RequestError struct {
	StatusCode int
	Detail     string
	kind       error
	cause      error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("mentorship: %s", e.Detail)
	}
	return fmt.Sprintf("mentorship: HTTP %d: %s", e.StatusCode, e.Detail)
}

// Is 区分重复申请与一般失败；传输错误同时匹配 ErrTransport 与 ErrRequestFailed
func (e *RequestError) Is(target error) bool {
	if e.kind != nil {
		return target == e.kind
	}
	if target == ErrRequestFailed {
		return true
	}
	return target == ErrTransport && e.StatusCode == 0
}

func (e *RequestError) Unwrap() error {
	return e.cause
}

func transportError(err error) *RequestError {
	return &RequestError{Detail: transportDetail, cause: err}
}
