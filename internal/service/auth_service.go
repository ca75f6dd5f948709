package service

import (
	"context"
	"errors"
	"strings"

	"mentorship-system/internal/model"
	"mentorship-system/internal/repository"
	"mentorship-system/pkg/jwt"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/password"
	"mentorship-system/pkg/redis"
	"mentorship-system/pkg/response"

	"go.uber.org/zap"
)

// SignUpInput 注册参数；Title/University 仅导师使用，TargetUniversities 仅学生使用
type SignUpInput struct {
	Name               string
	Email              string
	Password           string
	Description        string
	AvatarURL          string
	AdmissionType      string
	Title              string
	University         string
	TargetUniversities []string
}

// AuthService 学生/导师的注册、登录与资料查询
type AuthService struct {
	users      *repository.UserRepository
	mentors    *repository.MentorRepository
	jwtService *jwt.JWTService
}

func NewAuthService(users *repository.UserRepository, mentors *repository.MentorRepository, jwtService *jwt.JWTService) *AuthService {
	return &AuthService{users: users, mentors: mentors, jwtService: jwtService}
}

// SignUp 注册，返回新账号资料；令牌需再调用 SignIn 获取
func (s *AuthService) SignUp(ctx context.Context, role model.Role, in SignUpInput) (*response.ProfileInfo, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	if _, err := s.findByEmail(role, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 密码哈希
	hash, err := password.Hash(in.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return nil, ErrWeakPassword
		}
		return nil, err
	}

	var profile *response.ProfileInfo
	switch role {
	case model.RoleUser:
		user := &model.User{
			Name:               name,
			Email:              email,
			PasswordHash:       hash,
			IsActive:           true,
			Description:        in.Description,
			AvatarURL:          in.AvatarURL,
			AdmissionType:      in.AdmissionType,
			TargetUniversities: strings.Join(in.TargetUniversities, ","),
		}
		if err := s.users.Create(user); err != nil {
			return nil, err
		}
		profile = response.FilterUserInfo(user)
	case model.RoleMentor:
		mentor := &model.Mentor{
			Name:          name,
			Email:         email,
			PasswordHash:  hash,
			IsActive:      true,
			Title:         in.Title,
			Description:   in.Description,
			University:    in.University,
			AdmissionType: in.AdmissionType,
			AvatarURL:     in.AvatarURL,
		}
		if err := s.mentors.Create(mentor); err != nil {
			return nil, err
		}
		profile = response.FilterMentorInfo(mentor)
	}

	// 新账号会出现在推荐流中，清掉对应分页缓存
	if redis.Enabled() {
		if err := redis.InvalidateFeed(ctx, FeedKindFor(role)); err != nil {
			logger.Warn("清除推荐流缓存失败", zap.Error(err))
		}
	}

	logger.Info("账号注册成功", zap.String("role", string(role)), zap.Uint("id", profile.ID))
	return profile, nil
}

// SignIn 登录
func (s *AuthService) SignIn(role model.Role, email, plainPassword string) (string, error) {
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	email = normalizeEmail(email)
	acc, err := s.findByEmail(role, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !password.Verify(plainPassword, acc.passwordHash) {
		return "", ErrInvalidCredentials
	}
	if !acc.active {
		return "", ErrInactiveAccount
	}
	return s.jwtService.GenerateAccountToken(acc.id, role, email)
}

// Profile 当前账号资料
func (s *AuthService) Profile(role model.Role, id uint) (*response.ProfileInfo, error) {
	switch role {
	case model.RoleUser:
		u, err := s.users.GetByID(id)
		if err != nil {
			return nil, notFoundAs(err, ErrAccountNotFound)
		}
		return response.FilterUserInfo(u), nil
	case model.RoleMentor:
		m, err := s.mentors.GetByID(id)
		if err != nil {
			return nil, notFoundAs(err, ErrAccountNotFound)
		}
		return response.FilterMentorInfo(m), nil
	}
	return nil, ErrInvalidRole
}

// ProfileUpdate 资料局部更新，为nil的字段保持不变
// Title/University 仅导师使用，TargetUniversities 仅学生使用
type ProfileUpdate struct {
	Name               *string
	Description        *string
	AvatarURL          *string
	AdmissionType      *string
	Title              *string
	University         *string
	TargetUniversities *[]string
}

// UpdateProfile 更新当前账号资料
func (s *AuthService) UpdateProfile(ctx context.Context, role model.Role, id uint, in ProfileUpdate) (*response.ProfileInfo, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		in.Name = &name
	}

	var profile *response.ProfileInfo
	switch role {
	case model.RoleUser:
		u, err := s.users.GetByID(id)
		if err != nil {
			return nil, notFoundAs(err, ErrAccountNotFound)
		}
		assign(&u.Name, in.Name)
		assign(&u.Description, in.Description)
		assign(&u.AvatarURL, in.AvatarURL)
		assign(&u.AdmissionType, in.AdmissionType)
		if in.TargetUniversities != nil {
			u.TargetUniversities = strings.Join(*in.TargetUniversities, ",")
		}
		if err := s.users.Update(u); err != nil {
			return nil, err
		}
		profile = response.FilterUserInfo(u)
	case model.RoleMentor:
		m, err := s.mentors.GetByID(id)
		if err != nil {
			return nil, notFoundAs(err, ErrAccountNotFound)
		}
		assign(&m.Name, in.Name)
		assign(&m.Description, in.Description)
		assign(&m.AvatarURL, in.AvatarURL)
		assign(&m.AdmissionType, in.AdmissionType)
		assign(&m.Title, in.Title)
		assign(&m.University, in.University)
		if err := s.mentors.Update(m); err != nil {
			return nil, err
		}
		profile = response.FilterMentorInfo(m)
	default:
		return nil, ErrInvalidRole
	}

	// 推荐流展示资料字段，缓存随之失效
	if redis.Enabled() {
		if err := redis.InvalidateFeed(ctx, FeedKindFor(role)); err != nil {
			logger.Warn("清除推荐流缓存失败", zap.Error(err))
		}
	}
	logger.Info("账号资料已更新", zap.String("role", string(role)), zap.Uint("id", id))
	return profile, nil
}

// MentorProfile 导师公开资料，已停用的导师视为不存在
func (s *AuthService) MentorProfile(id uint) (*response.ProfileInfo, error) {
	m, err := s.mentors.GetByID(id)
	if err != nil {
		return nil, notFoundAs(err, ErrMentorNotFound)
	}
	if !m.IsActive {
		return nil, ErrMentorNotFound
	}
	return response.FilterMentorInfo(m), nil
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// credentials 登录校验所需的最小账号信息
type credentials struct {
	id           uint
	passwordHash string
	active       bool
}

func (s *AuthService) findByEmail(role model.Role, email string) (*credentials, error) {
	if role == model.RoleMentor {
		m, err := s.mentors.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		return &credentials{id: m.ID, passwordHash: m.PasswordHash, active: m.IsActive}, nil
	}
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	return &credentials{id: u.ID, passwordHash: u.PasswordHash, active: u.IsActive}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// notFoundAs 将仓储层未找到错误替换为业务错误
func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
