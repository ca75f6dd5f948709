package response

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"mentorship-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// 校验错误中的字段名取 json/form 标签
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	}
}

// 响应约定：成功时直接返回数据体，失败时返回 {"detail": ...}
// detail 为字符串，或字段校验错误列表 [{"loc": [...], "msg": "..."}]

// ErrorBody 错误响应结构
type ErrorBody struct {
	Detail interface{} `json:"detail"`
}

// FieldError 字段校验错误
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error 错误响应
func Error(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, ErrorBody{Detail: detail})
}

// BadRequest 400错误
func BadRequest(c *gin.Context, detail string) {
	Error(c, http.StatusBadRequest, detail)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	Error(c, http.StatusUnauthorized, detail)
}

// Forbidden 403错误
func Forbidden(c *gin.Context, detail string) {
	Error(c, http.StatusForbidden, detail)
}

// NotFound 404错误
func NotFound(c *gin.Context, detail string) {
	Error(c, http.StatusNotFound, detail)
}

// Conflict 409错误
func Conflict(c *gin.Context, detail string) {
	Error(c, http.StatusConflict, detail)
}

// TooManyRequests 429错误
func TooManyRequests(c *gin.Context, detail string) {
	Error(c, http.StatusTooManyRequests, detail)
}

// InternalError 500错误
func InternalError(c *gin.Context, detail string) {
	Error(c, http.StatusInternalServerError, detail)
}

// ValidationError 请求体校验失败：校验器错误返回422字段列表，其它绑定错误返回400
func ValidationError(c *gin.Context, err error) {
	ValidationErrorAt(c, err, "body")
}

// ValidationErrorAt 同 ValidationError，location 为参数位置（body/query/path）
func ValidationErrorAt(c *gin.Context, err error, location string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		BadRequest(c, err.Error())
		return
	}
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Loc:  []string{location, toSnake(fe.Field())},
			Msg:  fieldMessage(fe),
			Type: fe.Tag(),
		})
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorBody{Detail: details})
}

// fieldMessage 校验错误转为可读信息
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("value must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TokenResponse 登录/注册响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileInfo 账号资料（隐藏敏感字段）
type ProfileInfo struct {
	ID                 uint       `json:"id"`
	Role               model.Role `json:"role"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	IsActive           bool       `json:"is_active"`
	Title              string     `json:"title,omitempty"`
	Description        string     `json:"description,omitempty"`
	University         string     `json:"university,omitempty"`
	TargetUniversities []string   `json:"target_universities,omitempty"`
	AdmissionType      string     `json:"admission_type,omitempty"`
	AvatarURL          string     `json:"avatar_url,omitempty"`
	IsOnline           bool       `json:"is_online,omitempty"` // 仅推荐流填写
}

// FilterUserInfo 过滤学生信息
func FilterUserInfo(user *model.User) *ProfileInfo {
	if user == nil {
		return nil
	}
	return &ProfileInfo{
		ID:                 user.ID,
		Role:               model.RoleUser,
		Name:               user.Name,
		Email:              user.Email,
		IsActive:           user.IsActive,
		Description:        user.Description,
		TargetUniversities: user.Universities(),
		AdmissionType:      user.AdmissionType,
		AvatarURL:          user.AvatarURL,
	}
}

// FilterMentorInfo 过滤导师信息
func FilterMentorInfo(mentor *model.Mentor) *ProfileInfo {
	if mentor == nil {
		return nil
	}
	return &ProfileInfo{
		ID:            mentor.ID,
		Role:          model.RoleMentor,
		Name:          mentor.Name,
		Email:         mentor.Email,
		IsActive:      mentor.IsActive,
		Title:         mentor.Title,
		Description:   mentor.Description,
		University:    mentor.University,
		AdmissionType: mentor.AdmissionType,
		AvatarURL:     mentor.AvatarURL,
	}
}

// RequestInfo 申请响应，附带双方展示字段
type RequestInfo struct {
	ID                  uint                `json:"id"`
	SenderID            uint                `json:"sender_id"`
	SenderType          model.Role          `json:"sender_type"`
	ReceiverID          uint                `json:"receiver_id"`
	ReceiverType        model.Role          `json:"receiver_type"`
	Message             string              `json:"message"`
	Status              model.RequestStatus `json:"status"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	SenderName          string              `json:"sender_name,omitempty"`
	SenderEmail         string              `json:"sender_email,omitempty"`
	SenderAvatar        string              `json:"sender_avatar,omitempty"`
	ReceiverName        string              `json:"receiver_name,omitempty"`
	ReceiverEmail       string              `json:"receiver_email,omitempty"`
	ReceiverAvatar      string              `json:"receiver_avatar,omitempty"`
	ReceiverDescription string              `json:"receiver_description,omitempty"`
	ReceiverUniversity  string              `json:"receiver_university,omitempty"`
}

// FilterRequestInfo 组装申请响应；sender/receiver 为空时不填展示字段
func FilterRequestInfo(req *model.Request, sender, receiver *ProfileInfo) *RequestInfo {
	if req == nil {
		return nil
	}
	info := &RequestInfo{
		ID:           req.ID,
		SenderID:     req.SenderID,
		SenderType:   req.SenderType,
		ReceiverID:   req.ReceiverID,
		ReceiverType: req.ReceiverType,
		Message:      req.Message,
		Status:       req.Status,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	}
	if sender != nil {
		info.SenderName = sender.Name
		info.SenderEmail = sender.Email
		info.SenderAvatar = sender.AvatarURL
	}
	if receiver != nil {
		info.ReceiverName = receiver.Name
		info.ReceiverEmail = receiver.Email
		info.ReceiverAvatar = receiver.AvatarURL
		info.ReceiverDescription = receiver.Description
		info.ReceiverUniversity = receiver.University
	}
	return info
}

// ResumeInfo 导师履历
type ResumeInfo struct {
	ID          uint      `json:"id"`
	MentorID    uint      `json:"mentor_id"`
	University  string    `json:"university"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FilterResumeInfo(r *model.MentorResume) *ResumeInfo {
	if r == nil {
		return nil
	}
	return &ResumeInfo{
		ID:          r.ID,
		MentorID:    r.MentorID,
		University:  r.University,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FeedPage 推荐流分页响应
type FeedPage struct {
	Items []*ProfileInfo `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Pages int            `json:"pages"`
}
