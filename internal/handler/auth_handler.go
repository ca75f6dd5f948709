package handler

import (
	"mentorship-system/internal/model"
	"mentorship-system/internal/service"
	"mentorship-system/pkg/jwt"
	"mentorship-system/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type signUpRequest struct {
	Name               string   `json:"name" binding:"required,max=100"`
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password" binding:"required,min=8"`
	Description        string   `json:"description" binding:"max=2000"`
	AvatarURL          string   `json:"avatar_url" binding:"omitempty,url"`
	AdmissionType      string   `json:"admission_type" binding:"max=32"`
	Title              string   `json:"title" binding:"max=100"`
	University         string   `json:"university" binding:"max=100"`
	TargetUniversities []string `json:"target_universities"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name               *string   `json:"name" binding:"omitempty,max=100"`
	Description        *string   `json:"description" binding:"omitempty,max=2000"`
	AvatarURL          *string   `json:"avatar_url" binding:"omitempty,url"`
	AdmissionType      *string   `json:"admission_type" binding:"omitempty,max=32"`
	Title              *string   `json:"title" binding:"omitempty,max=100"`
	University         *string   `json:"university" binding:"omitempty,max=100"`
	TargetUniversities *[]string `json:"target_universities" binding:"omitempty,max=20"`
}

// SignUp 注册（学生或导师）
func (h *AuthHandler) SignUp(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r signUpRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			response.ValidationError(c, err)
			return
		}
		profile, err := h.service.SignUp(c.Request.Context(), role, service.SignUpInput{
			Name:               r.Name,
			Email:              r.Email,
			Password:           r.Password,
			Description:        r.Description,
			AvatarURL:          r.AvatarURL,
			AdmissionType:      r.AdmissionType,
			Title:              r.Title,
			University:         r.University,
			TargetUniversities: r.TargetUniversities,
		})
		if err != nil {
			renderError(c, err)
			return
		}
		response.Created(c, profile)
	}
}

// SignIn 登录，返回 bearer 令牌
func (h *AuthHandler) SignIn(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r signInRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			response.ValidationError(c, err)
			return
		}
		token, err := h.service.SignIn(role, r.Email, r.Password)
		if err != nil {
			renderError(c, err)
			return
		}
		response.Success(c, response.TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// Me 当前账号资料（需要JWT认证，且令牌角色与路由一致）
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.service.Profile(jwt.GetRole(c), jwt.GetAccountID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, profile)
}

// UpdateMe 局部更新当前账号资料，未出现的字段保持不变
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var r updateProfileRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.ValidationError(c, err)
		return
	}
	profile, err := h.service.UpdateProfile(c.Request.Context(), jwt.GetRole(c), jwt.GetAccountID(c), service.ProfileUpdate{
		Name:               r.Name,
		Description:        r.Description,
		AvatarURL:          r.AvatarURL,
		AdmissionType:      r.AdmissionType,
		Title:              r.Title,
		University:         r.University,
		TargetUniversities: r.TargetUniversities,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, profile)
}

// Mentor 导师公开资料
func (h *AuthHandler) Mentor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	profile, err := h.service.MentorProfile(id)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, profile)
}
