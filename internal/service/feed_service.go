package service

import (
	"context"
	"errors"

	"mentorship-system/config"
	"mentorship-system/internal/model"
	"mentorship-system/internal/repository"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/redis"
	"mentorship-system/pkg/response"

	"go.uber.org/zap"
)

// FeedKind 推荐流类型
type FeedKind string

const (
	FeedMentors FeedKind = "mentors" // 学生看到的导师列表
	FeedUsers   FeedKind = "users"   // 导师看到的学生列表
)

// MaxPageSize 每页数量上限
const MaxPageSize = 100

// FeedKindFor 某角色的账号所出现的推荐流
func FeedKindFor(role model.Role) string {
	if role == model.RoleMentor {
		return string(FeedMentors)
	}
	return string(FeedUsers)
}

// PresenceChecker 在线状态查询
type PresenceChecker interface {
	IsOnline(ctx context.Context, role model.Role, id uint) bool
}

// FeedService 推荐流分页查询，启用Redis时按页缓存
// 在线状态变化频繁，不进入缓存，每次返回前单独填写
type FeedService struct {
	users    *repository.UserRepository
	mentors  *repository.MentorRepository
	cfg      config.FeedConfig
	presence PresenceChecker
}

func NewFeedService(users *repository.UserRepository, mentors *repository.MentorRepository, cfg config.FeedConfig) *FeedService {
	return &FeedService{users: users, mentors: mentors, cfg: cfg}
}

// WithPresence 设置在线状态来源，为空时不标记在线
func (s *FeedService) WithPresence(p PresenceChecker) *FeedService {
	s.presence = p
	return s
}

func (s *FeedService) markOnline(ctx context.Context, page *response.FeedPage) {
	if s.presence == nil {
		return
	}
	for _, item := range page.Items {
		item.IsOnline = s.presence.IsOnline(ctx, item.Role, item.ID)
	}
}

// Page 查询一页推荐流
func (s *FeedService) Page(ctx context.Context, kind FeedKind, page, size int, search string) (*response.FeedPage, error) {
	page = min(max(page, 1), repository.MaxPage)
	if size < 1 {
		size = s.cfg.DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	key := redis.FeedCacheKey(string(kind), page, size, search)
	if redis.Enabled() {
		var cached response.FeedPage
		err := redis.GetCachedFeed(ctx, key, &cached)
		if err == nil {
			s.markOnline(ctx, &cached)
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			logger.Warn("读取推荐流缓存失败", zap.Error(err))
		}
	}

	p := repository.Page{Page: page, Size: size, Search: search}
	result := &response.FeedPage{Items: []*response.ProfileInfo{}, Page: page, Size: size}
	switch kind {
	case FeedMentors:
		mentors, total, err := s.mentors.List(p)
		if err != nil {
			return nil, err
		}
		for _, m := range mentors {
			result.Items = append(result.Items, response.FilterMentorInfo(m))
		}
		result.Total = total
	case FeedUsers:
		users, total, err := s.users.List(p)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			result.Items = append(result.Items, response.FilterUserInfo(u))
		}
		result.Total = total
	default:
		return nil, ErrInvalidRole
	}
	// 无数据时也返回1页
	result.Pages = 1
	if result.Total > 0 {
		result.Pages = int((result.Total + int64(size) - 1) / int64(size))
	}

	if redis.Enabled() {
		if err := redis.CacheFeed(ctx, key, result, s.cfg.CacheTTL); err != nil {
			logger.Warn("写入推荐流缓存失败", zap.Error(err))
		}
	}
	s.markOnline(ctx, result)
	return result, nil
}
