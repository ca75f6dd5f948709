package mentorship

import (
	"context"
	"net/http"
	"strconv"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SignIn 登录并保存令牌与角色；失败时清空已有会话
func (c *Client) SignIn(ctx context.Context, role Role, email, password string) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	var tok tokenResponse
	err := c.do(ctx, http.MethodPost, rolePath(role)+"/signin", nil,
		map[string]string{"email": email, "password": password}, &tok, false)
	if err == nil && tok.AccessToken == "" {
		err = &RequestError{StatusCode: http.StatusOK, Detail: "empty access token"}
	}
	if err != nil {
		_ = c.store.Clear()
		return err
	}
	return c.store.Save(tok.AccessToken, role)
}

// SignUp 注册，不会自动登录
func (c *Client) SignUp(ctx context.Context, role Role, in SignUpInput) (*Profile, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	var p Profile
	if err := c.do(ctx, http.MethodPost, rolePath(role)+"/signup", nil, in, &p, false); err != nil {
		return nil, err
	}
	return &p, nil
}

// SignOut 清除本地会话
func (c *Client) SignOut() error {
	return c.store.Clear()
}

// Me 当前登录账号资料
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	role, ok := c.store.GetRole()
	if !ok || !c.store.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	var p Profile
	if err := c.do(ctx, http.MethodGet, rolePath(role)+"/me", nil, nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile 局部更新当前账号资料
func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (*Profile, error) {
	role, ok := c.store.GetRole()
	if !ok || !c.store.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	var p Profile
	if err := c.do(ctx, http.MethodPatch, rolePath(role)+"/me", nil, in, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// Mentor 导师公开资料，无需登录
func (c *Client) Mentor(ctx context.Context, id uint) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/mentors/"+strconv.FormatUint(uint64(id), 10), nil, nil, &p, false); err != nil {
		return nil, err
	}
	return &p, nil
}
