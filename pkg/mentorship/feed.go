package mentorship

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// FeedKind 推荐流类型
type FeedKind string

const (
	FeedMentors FeedKind = "mentors"
	FeedUsers   FeedKind = "users"
)

const (
	defaultFeedSize = 10
	maxFeedSize     = 100
)

// FeedQuery 推荐流查询；Kind 为空时按当前角色选择对方列表
type FeedQuery struct {
	Kind   FeedKind
	Page   int
	Size   int
	Search string
}

// FeedPage 推荐流分页
type FeedPage struct {
	Items []Profile `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
	Pages int       `json:"pages"`
}

// GetFeed 查询推荐流；失败时返回空页
func (c *Client) GetFeed(ctx context.Context, q FeedQuery) FeedPage {
	if q.Kind == "" {
		q.Kind = FeedMentors
		if role, ok := c.store.GetRole(); ok && role == RoleMentor {
			q.Kind = FeedUsers
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = defaultFeedSize
	}
	if q.Size > maxFeedSize {
		q.Size = maxFeedSize
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	var page FeedPage
	if err := c.do(ctx, http.MethodGet, "/feed/"+string(q.Kind), params, nil, &page, false); err != nil {
		c.log.Warn("获取推荐流失败", zap.String("kind", string(q.Kind)), zap.Error(err))
		return FeedPage{Items: []Profile{}, Page: q.Page, Size: q.Size, Pages: 1}
	}
	if page.Items == nil {
		page.Items = []Profile{}
	}
	return page
}
