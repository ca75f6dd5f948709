package mentorship

import (
	"fmt"
	"time"
)

// Role 账号角色
type Role string

const (
	RoleUser   Role = "user"
	RoleMentor Role = "mentor"
)

// Valid 是否为合法角色
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleMentor
}

// Counterpart 对方角色
func (r Role) Counterpart() Role {
	if r == RoleUser {
		return RoleMentor
	}
	return RoleUser
}

// Status 申请状态
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsTerminal accepted 与 rejected 为终态
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo 只允许 pending -> accepted | rejected
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.IsTerminal()
}

// Request 导师申请，ID 由后端分配
type Request struct {
	ID           uint      `json:"id"`
	SenderID     uint      `json:"sender_id"`
	SenderType   Role      `json:"sender_type"`
	ReceiverID   uint      `json:"receiver_id"`
	ReceiverType Role      `json:"receiver_type"`
	Message      string    `json:"message"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 展示字段，后端联表返回，可能缺失
	SenderName          string `json:"sender_name,omitempty"`
	SenderEmail         string `json:"sender_email,omitempty"`
	SenderAvatar        string `json:"sender_avatar,omitempty"`
	ReceiverName        string `json:"receiver_name,omitempty"`
	ReceiverEmail       string `json:"receiver_email,omitempty"`
	ReceiverAvatar      string `json:"receiver_avatar,omitempty"`
	ReceiverDescription string `json:"receiver_description,omitempty"`
	ReceiverUniversity  string `json:"receiver_university,omitempty"`
}

// IsPending 是否待处理
func (r Request) IsPending() bool {
	return r.Status == StatusPending
}

// SenderDisplayName 发送者名称，缺失时为 "User #1" 形式的占位
func (r Request) SenderDisplayName() string {
	if r.SenderName != "" {
		return r.SenderName
	}
	return placeholderName(r.SenderType, r.SenderID)
}

// ReceiverDisplayName 接收者名称，缺失时为 "Mentor #42" 形式的占位
func (r Request) ReceiverDisplayName() string {
	if r.ReceiverName != "" {
		return r.ReceiverName
	}
	return placeholderName(r.ReceiverType, r.ReceiverID)
}

func placeholderName(role Role, id uint) string {
	if role == RoleMentor {
		return fmt.Sprintf("Mentor #%d", id)
	}
	return fmt.Sprintf("User #%d", id)
}

// Profile 学生或导师资料
type Profile struct {
	ID                 uint     `json:"id"`
	Role               Role     `json:"role"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	IsActive           bool     `json:"is_active"`
	Title              string   `json:"title,omitempty"`
	Description        string   `json:"description,omitempty"`
	University         string   `json:"university,omitempty"`
	TargetUniversities []string `json:"target_universities,omitempty"`
	AdmissionType      string   `json:"admission_type,omitempty"`
	AvatarURL          string   `json:"avatar_url,omitempty"`
	IsOnline           bool     `json:"is_online,omitempty"`
}

// SignUpInput 注册参数
type SignUpInput struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	Description        string   `json:"description,omitempty"`
	AvatarURL          string   `json:"avatar_url,omitempty"`
	AdmissionType      string   `json:"admission_type,omitempty"`
	Title              string   `json:"title,omitempty"`
	University         string   `json:"university,omitempty"`
	TargetUniversities []string `json:"target_universities,omitempty"`
}

// ProfileUpdate 资料局部更新，为nil的字段不发送
type ProfileUpdate struct {
	Name               *string   `json:"name,omitempty"`
	Description        *string   `json:"description,omitempty"`
	AvatarURL          *string   `json:"avatar_url,omitempty"`
	AdmissionType      *string   `json:"admission_type,omitempty"`
	Title              *string   `json:"title,omitempty"`
	University         *string   `json:"university,omitempty"`
	TargetUniversities *[]string `json:"target_universities,omitempty"`
}

// Resume 导师履历
type Resume struct {
	ID          uint      `json:"id"`
	MentorID    uint      `json:"mentor_id"`
	University  string    `json:"university"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResumeInput 新建履历
type ResumeInput struct {
	University  string `json:"university"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ResumeUpdate 履历局部更新
type ResumeUpdate struct {
	University  *string `json:"university,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}
